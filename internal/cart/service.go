package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spequip/backend/pkg/db/models"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type wishlistLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
}

// Service exposes business rules for cart management.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	AddAllFromWishlist(ctx context.Context, userID uuid.UUID) (*BulkAddResultDTO, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo     *Repository
	ProductRepo  productLoader
	WishlistRepo wishlistLister
}

type service struct {
	cartRepo     *Repository
	productRepo  productLoader
	wishlistRepo wishlistLister
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	return &service{
		cartRepo:     params.CartRepo,
		productRepo:  params.ProductRepo,
		wishlistRepo: params.WishlistRepo,
	}, nil
}

// AddItem puts a product into the cart, or bumps the quantity when already present.
// Stock is validated against the requested amount at add time; the checkout
// transaction re-validates before committing.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.loadProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.StockQuantity < qty {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")
	}

	existing, err := s.cartRepo.FindItem(ctx, userID, input.ProductID)
	switch {
	case err == nil:
		if err := s.cartRepo.IncrementQuantity(ctx, existing.ID, qty); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  qty,
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem drops a product from the cart.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and product id are required")
	}

	removed, err := s.cartRepo.DeleteItem(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	if !removed {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the user's cart with line and grand totals.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}

	cart := &CartDTO{Items: make([]CartItemDTO, 0, len(rows)), Total: decimal.Zero}
	for i := range rows {
		item := itemFromModel(&rows[i])
		cart.Items = append(cart.Items, item)
		cart.Total = cart.Total.Add(item.LineTotal)
		cart.ItemCount += item.Quantity
	}
	return cart, nil
}

// Count returns the total quantity held in the user's cart.
func (s *service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	count, err := s.cartRepo.SumQuantities(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
	}
	return count, nil
}

// AddAllFromWishlist copies every in-stock wishlist product into the cart.
// A product already in the cart gets one more unit only while stock exceeds
// the current cart quantity; sold-out and maxed-out products are skipped
// rather than failing the whole transfer.
func (s *service) AddAllFromWishlist(ctx context.Context, userID uuid.UUID) (*BulkAddResultDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}

	result := &BulkAddResultDTO{}
	for _, item := range items {
		product, err := s.loadProduct(ctx, item.ProductID)
		if err != nil {
			if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		if product.StockQuantity <= 0 {
			result.Skipped++
			continue
		}

		existing, err := s.cartRepo.FindItem(ctx, userID, item.ProductID)
		switch {
		case err == nil:
			if product.StockQuantity <= existing.Quantity {
				result.Skipped++
				continue
			}
			if err := s.cartRepo.IncrementQuantity(ctx, existing.ID, 1); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart item")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := &models.CartItem{UserID: userID, ProductID: item.ProductID, Quantity: 1}
			if err := s.cartRepo.CreateItem(ctx, row); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart item")
			}
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}
		result.Added++
	}
	return result, nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
