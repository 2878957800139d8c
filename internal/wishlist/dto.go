package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/pkg/db/models"
)

// WishlistItemDTO is one saved product in a user's wishlist.
type WishlistItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	InStock   bool            `json:"in_stock"`
	AddedAt   time.Time       `json:"added_at"`
}

// WishlistDTO is the full wishlist view.
type WishlistDTO struct {
	Items []WishlistItemDTO `json:"items"`
}

func itemFromModel(item *models.WishlistItem) WishlistItemDTO {
	dto := WishlistItemDTO{
		ProductID: item.ProductID,
		AddedAt:   item.CreatedAt,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Price = item.Product.Price
		dto.ImageURL = item.Product.ImageURL
		dto.InStock = item.Product.StockQuantity > 0
	}
	return dto
}
