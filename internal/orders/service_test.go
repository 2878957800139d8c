package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spequip/backend/pkg/db/models"
	"github.com/spequip/backend/pkg/enums"
	pkgerrors "github.com/spequip/backend/pkg/errors"
	"github.com/spequip/backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderLineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(ServiceParams{Repo: NewRepository(conn)})
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

func mustCreateOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.OrderStatus, total float64) *models.Order {
	t.Helper()
	product := &models.Product{
		Name:          "Gear " + uuid.NewString()[:8],
		Description:   "test gear",
		Price:         decimal.NewFromFloat(total),
		Category:      enums.ProductCategoryFitness,
		ImageURL:      "default-product.jpg",
		StockQuantity: 10,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	order := &models.Order{
		UserID:      userID,
		TotalAmount: decimal.NewFromFloat(total),
		Status:      status,
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromFloat(total)},
		},
	}
	if err := conn.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestGetOrderOwnership(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	owner := mustCreateUser(t, conn)
	stranger := mustCreateUser(t, conn)
	order := mustCreateOrder(t, conn, owner.ID, enums.OrderStatusPending, 25)

	dto, err := svc.GetOrder(ctx, owner.ID, enums.UserRoleCustomer, order.ID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(dto.Items))
	}
	if dto.Items[0].ProductName == "" {
		t.Fatal("expected product name resolved on line item")
	}

	if _, err := svc.GetOrder(ctx, stranger.ID, enums.UserRoleCustomer, order.ID); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	if _, err := svc.GetOrder(ctx, stranger.ID, enums.UserRoleAdmin, order.ID); err != nil {
		t.Fatalf("admin read should pass: %v", err)
	}

	if _, err := svc.GetOrder(ctx, owner.ID, enums.UserRoleCustomer, uuid.New()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMyOrdersNewestFirst(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	other := mustCreateUser(t, conn)
	mustCreateOrder(t, conn, user.ID, enums.OrderStatusPending, 10)
	mustCreateOrder(t, conn, user.ID, enums.OrderStatusShipped, 20)
	mustCreateOrder(t, conn, other.ID, enums.OrderStatusPending, 30)

	dtos, err := svc.ListMyOrders(ctx, user.ID)
	if err != nil {
		t.Fatalf("list my orders: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(dtos))
	}
	for _, dto := range dtos {
		if dto.UserID != user.ID {
			t.Fatalf("foreign order leaked: %+v", dto)
		}
	}
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	mustCreateOrder(t, conn, user.ID, enums.OrderStatusPending, 10)
	mustCreateOrder(t, conn, user.ID, enums.OrderStatusShipped, 20)
	mustCreateOrder(t, conn, user.ID, enums.OrderStatusShipped, 30)

	page, err := svc.ListOrders(ctx, ListParams{Status: "shipped", Page: pagination.Params{PerPage: 10}})
	if err != nil {
		t.Fatalf("list shipped: %v", err)
	}
	if len(page.Items) != 2 || page.Pagination.TotalItems != 2 {
		t.Fatalf("expected 2 shipped orders, got %d (total %d)", len(page.Items), page.Pagination.TotalItems)
	}

	if _, err := svc.ListOrders(ctx, ListParams{Status: "teleported"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn)
	order := mustCreateOrder(t, conn, user.ID, enums.OrderStatusPending, 10)

	dto, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: enums.OrderStatusConfirmed})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if dto.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", dto.Status)
	}

	var reloaded models.Order
	if err := conn.First(&reloaded, "id = ?", order.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enums.OrderStatusConfirmed {
		t.Fatalf("status not persisted, got %s", reloaded.Status)
	}

	if _, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: "melted"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), UpdateStatusInput{Status: enums.OrderStatusShipped}); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
