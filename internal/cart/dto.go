package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/pkg/db/models"
)

// AddItemInput carries the payload for adding a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,gte=1"`
}

// CartItemDTO is one cart line joined with its product.
type CartItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartDTO is the full cart view for a user.
type CartDTO struct {
	Items     []CartItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// BulkAddResultDTO summarizes a wishlist-to-cart transfer.
type BulkAddResultDTO struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

func itemFromModel(item *models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.ImageURL = item.Product.ImageURL
		dto.UnitPrice = item.Product.Price
		dto.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return dto
}
