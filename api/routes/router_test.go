package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/internal/catalog"
	"github.com/rentiva/rentiva-backend/internal/rentals"
	pkgAuth "github.com/rentiva/rentiva-backend/pkg/auth"
	"github.com/rentiva/rentiva-backend/pkg/auth/session"
	"github.com/rentiva/rentiva-backend/pkg/config"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
	"github.com/rentiva/rentiva-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubCatalogService struct{}

func (stubCatalogService) CreateItem(ctx context.Context, input catalog.CreateItemInput) (*catalog.ItemView, error) {
	panic("unimplemented")
}

func (stubCatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*catalog.ItemView, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListItems(ctx context.Context, params catalog.ListParams) (*catalog.ItemList, error) {
	return &catalog.ItemList{}, nil
}

type stubRentalsService struct{}

func (stubRentalsService) Rent(ctx context.Context, input rentals.RentInput) (*rentals.RentalRecord, error) {
	panic("unimplemented")
}

func (stubRentalsService) Return(ctx context.Context, input rentals.ReturnInput) (*rentals.ReturnReceipt, error) {
	panic("unimplemented")
}

func (stubRentalsService) Cancel(ctx context.Context, input rentals.CancelInput) (*rentals.CancelResult, error) {
	panic("unimplemented")
}

func (stubRentalsService) ItemHistory(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*rentals.ItemHistory, error) {
	return &rentals.ItemHistory{ItemID: itemID}, nil
}

func (stubRentalsService) CustomerRentals(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*rentals.CustomerRentals, error) {
	return &rentals.CustomerRentals{CustomerID: customerID}, nil
}

type stubBehaviorService struct{}

func (stubBehaviorService) AddStrike(ctx context.Context, input behavior.AddStrikeInput) (*behavior.StrikeResult, error) {
	panic("unimplemented")
}

func (stubBehaviorService) ResolveStrike(ctx context.Context, input behavior.ResolveStrikeInput) (*behavior.StrikeResult, error) {
	panic("unimplemented")
}

func (stubBehaviorService) Get(ctx context.Context, customerID uuid.UUID) (*behavior.BehaviorView, error) {
	return &behavior.BehaviorView{CustomerID: customerID, Standing: enums.CustomerStandingGood}, nil
}

func (stubBehaviorService) ListFlagged(ctx context.Context, params pagination.Params) (*behavior.FlaggedList, error) {
	return &behavior.FlaggedList{}, nil
}

type stubLicensesService struct {
	denied bool
}

func (s stubLicensesService) Allow(ctx context.Context, userID uuid.UUID) error {
	if s.denied {
		return pkgerrors.New(pkgerrors.CodeForbidden, "no license on file")
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Redis:    (*redis.Client)(nil),
		Sessions: stubSessionChecker{},
		Catalog:  stubCatalogService{},
		Rentals:  stubRentalsService{},
		Behavior: stubBehaviorService{},
		Licenses: stubLicensesService{},
	})
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Rentiva-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Rentiva-Env"))
	}
}

func TestPublicPingSkipsAuth(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleAdmin, uuid.New()))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestCustomerBehaviorRouteIsWired(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	customerID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/behavior", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, customerID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for own behavior got %d", resp.Code)
	}
}

func TestRentRequiresLicense(t *testing.T) {
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	router := NewRouter(RouterParams{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Redis:    (*redis.Client)(nil),
		Sessions: stubSessionChecker{},
		Catalog:  stubCatalogService{},
		Rentals:  stubRentalsService{},
		Behavior: stubBehaviorService{},
		Licenses: stubLicensesService{denied: true},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/"+uuid.NewString()+"/rent", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCustomer, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without license got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role enums.ActorRole, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
