package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spequip/backend/internal/admin"
	"github.com/spequip/backend/internal/auth"
	"github.com/spequip/backend/internal/cart"
	"github.com/spequip/backend/internal/catalog"
	"github.com/spequip/backend/internal/orders"
	"github.com/spequip/backend/internal/reviews"
	"github.com/spequip/backend/internal/wishlist"
	pkgAuth "github.com/spequip/backend/pkg/auth"
	"github.com/spequip/backend/pkg/auth/session"
	"github.com/spequip/backend/pkg/config"
	"github.com/spequip/backend/pkg/enums"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{}, nil
}

func (stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: id}, nil
}

func (stubCatalogService) ListProducts(ctx context.Context, params catalog.ListParams) (*catalog.ProductPageDTO, error) {
	return &catalog.ProductPageDTO{Items: []catalog.ProductDTO{}}, nil
}

func (stubCatalogService) Categories() []enums.ProductCategory {
	return enums.ProductCategories()
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cart.AddItemInput) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func (stubCartService) AddAllFromWishlist(ctx context.Context, userID uuid.UUID) (*cart.BulkAddResultDTO, error) {
	return &cart.BulkAddResultDTO{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{UserID: userID}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) GetOrder(ctx context.Context, requesterID uuid.UUID, requesterRole enums.UserRole, orderID uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: orderID}, nil
}

func (stubOrdersService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderDTO, error) {
	return nil, nil
}

func (stubOrdersService) ListOrders(ctx context.Context, params orders.ListParams) (*orders.OrderPageDTO, error) {
	return &orders.OrderPageDTO{}, nil
}

func (stubOrdersService) UpdateStatus(ctx context.Context, orderID uuid.UUID, input orders.UpdateStatusInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: orderID}, nil
}

type stubReviewsService struct{}

func (stubReviewsService) AddReview(ctx context.Context, userID, productID uuid.UUID, input reviews.AddReviewInput) (*reviews.ReviewDTO, error) {
	return &reviews.ReviewDTO{}, nil
}

func (stubReviewsService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]reviews.ReviewDTO, error) {
	return nil, nil
}

func (stubReviewsService) DeleteReview(ctx context.Context, requesterID uuid.UUID, requesterRole enums.UserRole, reviewID uuid.UUID) error {
	return nil
}

type stubWishlistService struct{}

func (stubWishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*wishlist.WishlistDTO, error) {
	return &wishlist.WishlistDTO{}, nil
}

func (stubWishlistService) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

func (stubWishlistService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

type stubAdminService struct{}

func (stubAdminService) Dashboard(ctx context.Context) (*admin.DashboardDTO, error) {
	return &admin.DashboardDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "spequip", ExpirationMinutes: 15},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:          testConfig(),
		DB:              stubPinger{},
		Session:         stubSessionChecker{},
		AuthService:     stubAuthService{},
		CatalogService:  stubCatalogService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrdersService:   stubOrdersService{},
		ReviewsService:  stubReviewsService{},
		WishlistService: stubWishlistService{},
		AdminService:    stubAdminService{},
	})
}

func mintToken(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPublicCatalogDoesNotRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/products", "/api/v1/products/categories"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/wishlist"},
	} {
		req := httptest.NewRequest(probe.method, probe.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", probe.method, probe.path, rec.Code)
		}
	}
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.UserRoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.UserRoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdminRoutesAllowAdmins(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.UserRoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
