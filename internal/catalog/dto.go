package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	"github.com/spequip/backend/pkg/pagination"
)

// ProductDTO is the transport shape for a catalog product.
type ProductDTO struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Price         decimal.Decimal       `json:"price"`
	Category      enums.ProductCategory `json:"category"`
	ImageURL      string                `json:"image_url"`
	StockQuantity int                   `json:"stock_quantity"`
	AvgRating     *float64              `json:"avg_rating,omitempty"`
	ReviewCount   int64                 `json:"review_count"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name          string                `json:"name" validate:"required,max=200"`
	Description   string                `json:"description" validate:"required"`
	Price         decimal.Decimal       `json:"price" validate:"required"`
	Category      enums.ProductCategory `json:"category" validate:"required"`
	ImageURL      string                `json:"image_url,omitempty"`
	StockQuantity int                   `json:"stock_quantity" validate:"gte=0"`
}

// UpdateProductInput carries optional fields for partial product updates.
type UpdateProductInput struct {
	Name          *string                `json:"name,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Price         *decimal.Decimal       `json:"price,omitempty"`
	Category      *enums.ProductCategory `json:"category,omitempty"`
	ImageURL      *string                `json:"image_url,omitempty"`
	StockQuantity *int                   `json:"stock_quantity,omitempty"`
}

// ListParams captures catalog browse filters.
type ListParams struct {
	Category string
	Search   string
	Page     pagination.Params
}

// ProductPageDTO is one page of catalog results.
type ProductPageDTO struct {
	Items      []ProductDTO    `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// RatingSummary aggregates review stats for a product.
type RatingSummary struct {
	Avg   *float64
	Count int64
}

func fromModel(p *models.Product, rating RatingSummary) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		AvgRating:     rating.Avg,
		ReviewCount:   rating.Count,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
