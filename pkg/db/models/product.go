package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spequip/backend/pkg/enums"
)

// Product represents a catalog listing with its live stock counter.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Description   string                `gorm:"column:description;not null"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Category      enums.ProductCategory `gorm:"column:category;not null;index"`
	ImageURL      string                `gorm:"column:image_url;not null;default:'default-product.jpg'"`
	StockQuantity int                   `gorm:"column:stock_quantity;not null;default:0"`
	Reviews       []Review              `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the row identifier when the caller did not.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
