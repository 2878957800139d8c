package admin

import (
	"github.com/shopspring/decimal"

	"github.com/spequip/backend/internal/orders"
)

// DashboardDTO is the admin landing-page aggregate.
type DashboardDTO struct {
	UserCount         int64             `json:"user_count"`
	ProductCount      int64             `json:"product_count"`
	OrderCount        int64             `json:"order_count"`
	PendingOrderCount int64             `json:"pending_order_count"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	RecentOrders      []orders.OrderDTO `json:"recent_orders"`
}
