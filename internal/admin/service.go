package admin

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spequip/backend/internal/orders"
	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

const recentOrdersLimit = 5

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context) (int64, error)
}

type orderStats interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
}

// Service aggregates storefront stats for the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardDTO, error)
}

// ServiceParams groups dependencies for the admin service.
type ServiceParams struct {
	Users    userCounter
	Products productCounter
	Orders   orderStats
}

type service struct {
	users    userCounter
	products productCounter
	orders   orderStats
}

// NewService builds an admin service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{users: params.Users, products: params.Products, orders: params.Orders}, nil
}

// Dashboard assembles the storefront counters and the most recent orders.
func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	orderCount, err := s.orders.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	pendingCount, err := s.orders.CountByStatus(ctx, enums.OrderStatusPending.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	recent, err := s.orders.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent orders")
	}

	recentDTOs := make([]orders.OrderDTO, 0, len(recent))
	for i := range recent {
		recentDTOs = append(recentDTOs, orders.FromModel(&recent[i]))
	}

	return &DashboardDTO{
		UserCount:         userCount,
		ProductCount:      productCount,
		OrderCount:        orderCount,
		PendingOrderCount: pendingCount,
		TotalRevenue:      revenue,
		RecentOrders:      recentDTOs,
	}, nil
}
