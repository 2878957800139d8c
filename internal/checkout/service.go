package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spequip/backend/internal/cart"
	"github.com/spequip/backend/internal/catalog"
	"github.com/spequip/backend/internal/orders"
	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns a user's cart into a placed order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*orders.OrderDTO, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	CartRepo    *cart.Repository
	CatalogRepo *catalog.Repository
	OrdersRepo  *orders.Repository
	Tx          txRunner
}

type service struct {
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	tx          txRunner
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		cartRepo:    params.CartRepo,
		catalogRepo: params.CatalogRepo,
		ordersRepo:  params.OrdersRepo,
		tx:          params.Tx,
	}, nil
}

// PlaceOrder converts the user's cart into an order in a single transaction.
// Each line re-reads the current product price and decrements stock with a
// conditional update, so a concurrent checkout that drains stock first makes
// this one roll back rather than oversell.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		catalogRepo := s.catalogRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		items, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		total := decimal.Zero
		lines := make([]models.OrderLineItem, 0, len(items))
		for i := range items {
			item := &items[i]

			product, err := catalogRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}

			ok, err := catalogRepo.DecrementStock(ctx, product.ID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("insufficient stock for %s", product.Name))
			}

			lines = append(lines, models.OrderLineItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order, err := ordersRepo.Create(ctx, &models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      enums.OrderStatusPending,
			LineItems:   lines,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload outside the closure so line items carry their products.
	order, err := s.ordersRepo.FindByID(ctx, placed.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	dto := orders.FromModel(order)
	return &dto, nil
}
