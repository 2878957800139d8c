package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spequip/backend/internal/cart"
	"github.com/spequip/backend/internal/catalog"
	"github.com/spequip/backend/internal/orders"
	"github.com/spequip/backend/pkg/db"
	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(ServiceParams{
		CartRepo:    cart.NewRepository(conn),
		CatalogRepo: catalog.NewRepository(conn),
		OrdersRepo:  orders.NewRepository(conn),
		Tx:          db.NewFromConn(conn),
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

func mustCreateProduct(t *testing.T, conn *gorm.DB, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Gear " + uuid.NewString()[:8],
		Description:   "test gear",
		Price:         decimal.RequireFromString(price),
		Category:      enums.ProductCategoryFitness,
		ImageURL:      "default-product.jpg",
		StockQuantity: stock,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustAddToCart(t *testing.T, conn *gorm.DB, userID, productID uuid.UUID, qty int) {
	t.Helper()
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}
}

func TestPlaceOrder(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	ball := mustCreateProduct(t, conn, "19.99", 10)
	racket := mustCreateProduct(t, conn, "89.50", 3)
	mustAddToCart(t, conn, user.ID, ball.ID, 2)
	mustAddToCart(t, conn, user.ID, racket.ID, 1)

	dto, err := svc.PlaceOrder(ctx, user.ID)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	want := decimal.RequireFromString("129.48")
	if !dto.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, dto.TotalAmount)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(dto.Items))
	}
	for _, item := range dto.Items {
		if item.ProductName == "" {
			t.Fatalf("expected product name on line item %s", item.ProductID)
		}
	}

	var reloadedBall models.Product
	if err := conn.First(&reloadedBall, "id = ?", ball.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloadedBall.StockQuantity != 8 {
		t.Fatalf("expected stock 8, got %d", reloadedBall.StockQuantity)
	}

	var cartRows int64
	if err := conn.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartRows).Error; err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if cartRows != 0 {
		t.Fatalf("expected empty cart, got %d rows", cartRows)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, conn := newTestService(t)
	user := mustCreateUser(t, conn)

	if _, err := svc.PlaceOrder(context.Background(), user.ID); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	ball := mustCreateProduct(t, conn, "19.99", 10)
	racket := mustCreateProduct(t, conn, "89.50", 1)
	mustAddToCart(t, conn, user.ID, ball.ID, 2)
	mustAddToCart(t, conn, user.ID, racket.ID, 5)

	if _, err := svc.PlaceOrder(ctx, user.ID); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	var reloadedBall models.Product
	if err := conn.First(&reloadedBall, "id = ?", ball.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloadedBall.StockQuantity != 10 {
		t.Fatalf("expected stock untouched at 10, got %d", reloadedBall.StockQuantity)
	}

	var orderCount int64
	if err := conn.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}

	var cartRows int64
	if err := conn.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartRows).Error; err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if cartRows != 2 {
		t.Fatalf("expected cart preserved with 2 rows, got %d", cartRows)
	}
}

func TestPlaceOrderUsesCurrentPrice(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	ball := mustCreateProduct(t, conn, "19.99", 10)
	mustAddToCart(t, conn, user.ID, ball.ID, 1)

	if err := conn.Model(&models.Product{}).
		Where("id = ?", ball.ID).
		UpdateColumn("price", "24.99").Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	dto, err := svc.PlaceOrder(ctx, user.ID)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	want := decimal.RequireFromString("24.99")
	if !dto.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, dto.TotalAmount)
	}
	if !dto.Items[0].UnitPrice.Equal(want) {
		t.Fatalf("expected snapshot price %s, got %s", want, dto.Items[0].UnitPrice)
	}
}
