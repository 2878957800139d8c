package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spequip/backend/internal/catalog"
	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:wishlist_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(ServiceParams{
		WishlistRepo: NewRepository(conn),
		ProductRepo:  catalog.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func mustCreateUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Username:     "user_" + uuid.NewString()[:8],
		Email:        "user_" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hash",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Gear " + uuid.NewString()[:8],
		Description:   "test gear",
		Price:         decimal.NewFromFloat(19.99),
		Category:      enums.ProductCategoryFitness,
		ImageURL:      "default-product.jpg",
		StockQuantity: stock,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestAddItemIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	product := mustCreateProduct(t, conn, 3)

	if err := svc.AddItem(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddItem(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("second add should be a no-op: %v", err)
	}

	var count int64
	conn.Model(&models.WishlistItem{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single wishlist row, got %d", count)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, conn := newTestService(t)
	user := mustCreateUser(t, conn)

	err := svc.AddItem(context.Background(), user.ID, uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetWishlistReflectsStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	inStock := mustCreateProduct(t, conn, 2)
	soldOut := mustCreateProduct(t, conn, 0)

	if err := svc.AddItem(ctx, user.ID, inStock.ID); err != nil {
		t.Fatalf("add in-stock: %v", err)
	}
	if err := svc.AddItem(ctx, user.ID, soldOut.ID); err != nil {
		t.Fatalf("add sold-out: %v", err)
	}

	dto, err := svc.GetWishlist(ctx, user.ID)
	if err != nil {
		t.Fatalf("get wishlist: %v", err)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(dto.Items))
	}

	byProduct := map[uuid.UUID]WishlistItemDTO{}
	for _, item := range dto.Items {
		byProduct[item.ProductID] = item
	}
	if !byProduct[inStock.ID].InStock {
		t.Fatal("expected in-stock flag set")
	}
	if byProduct[soldOut.ID].InStock {
		t.Fatal("expected sold-out flag cleared")
	}
}

func TestRemoveItem(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	product := mustCreateProduct(t, conn, 1)

	if err := svc.AddItem(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveItem(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveItem(ctx, user.ID, product.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}
