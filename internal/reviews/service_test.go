package reviews

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
	dsn := "file:reviews_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Products: catalog.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func mustCreateUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Gear " + uuid.NewString()[:8],
		Description:   "test gear",
		Price:         decimal.RequireFromString("9.99"),
		Category:      enums.ProductCategoryFitness,
		ImageURL:      "default-product.jpg",
		StockQuantity: 5,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestAddReview(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn, "rower_42")
	product := mustCreateProduct(t, conn)

	dto, err := svc.AddReview(ctx, user.ID, product.ID, AddReviewInput{Rating: 4, Comment: "  solid grip  "})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if dto.Rating != 4 {
		t.Fatalf("expected rating 4, got %d", dto.Rating)
	}
	if dto.Comment != "solid grip" {
		t.Fatalf("expected trimmed comment, got %q", dto.Comment)
	}
}

func TestAddReviewRejectsSecondReview(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn, "rower_42")
	product := mustCreateProduct(t, conn)

	if _, err := svc.AddReview(ctx, user.ID, product.ID, AddReviewInput{Rating: 5}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.AddReview(ctx, user.ID, product.ID, AddReviewInput{Rating: 1}); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAddReviewValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, conn, "rower_42")
	product := mustCreateProduct(t, conn)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.AddReview(ctx, user.ID, product.ID, AddReviewInput{Rating: rating}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}

	if _, err := svc.AddReview(ctx, user.ID, uuid.New(), AddReviewInput{Rating: 3}); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestListByProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, conn, "alice_lifts")
	bob := mustCreateUser(t, conn, "bob_runs")
	product := mustCreateProduct(t, conn)

	if _, err := svc.AddReview(ctx, alice.ID, product.ID, AddReviewInput{Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("add review: %v", err)
	}
	if _, err := svc.AddReview(ctx, bob.ID, product.ID, AddReviewInput{Rating: 2}); err != nil {
		t.Fatalf("add review: %v", err)
	}

	dtos, err := svc.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(dtos))
	}
	names := map[string]bool{}
	for _, dto := range dtos {
		names[dto.Username] = true
	}
	if !names["alice_lifts"] || !names["bob_runs"] {
		t.Fatalf("expected reviewer usernames resolved, got %v", names)
	}

	if _, err := svc.ListByProduct(ctx, uuid.New()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	owner := mustCreateUser(t, conn, "owner_91")
	stranger := mustCreateUser(t, conn, "stranger_17")
	product := mustCreateProduct(t, conn)

	dto, err := svc.AddReview(ctx, owner.ID, product.ID, AddReviewInput{Rating: 3})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}

	if err := svc.DeleteReview(ctx, stranger.ID, enums.UserRoleCustomer, dto.ID); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.DeleteReview(ctx, owner.ID, enums.UserRoleCustomer, dto.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteReview(ctx, owner.ID, enums.UserRoleCustomer, dto.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
