package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	"github.com/spequip/backend/pkg/pagination"
)

// OrderLineItemDTO is one snapshot line inside an order.
type OrderLineItemDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDTO is the transport shape for an order.
type OrderDTO struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      enums.OrderStatus  `json:"status"`
	Items       []OrderLineItemDTO `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ListParams captures admin order-list filters.
type ListParams struct {
	Status string
	Page   pagination.Params
}

// OrderPageDTO is one page of orders.
type OrderPageDTO struct {
	Items      []OrderDTO      `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// UpdateStatusInput carries the requested status transition.
type UpdateStatusInput struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// FromModel converts a persisted order into its transport shape.
func FromModel(o *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		Items:       make([]OrderLineItemDTO, 0, len(o.LineItems)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i := range o.LineItems {
		line := &o.LineItems[i]
		item := OrderLineItemDTO{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
		if line.Product != nil {
			item.ProductName = line.Product.Name
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}
