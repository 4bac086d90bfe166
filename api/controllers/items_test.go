package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/api/middleware"
	"github.com/rentiva/rentiva-backend/internal/catalog"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubCatalogService struct {
	created *catalog.CreateItemInput
	item    *catalog.ItemView
	list    *catalog.ItemList
	params  *catalog.ListParams
}

func (s *stubCatalogService) CreateItem(ctx context.Context, input catalog.CreateItemInput) (*catalog.ItemView, error) {
	s.created = &input
	return &catalog.ItemView{
		ID:               uuid.New(),
		OwnerID:          input.OwnerID,
		Name:             input.Name,
		Category:         input.Category,
		PriceAmountCents: input.PriceAmountCents,
		PriceUnit:        input.PriceUnit,
		Availability:     enums.ItemAvailabilityAvailable,
	}, nil
}

func (s *stubCatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*catalog.ItemView, error) {
	if s.item == nil || s.item.ID != itemID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return s.item, nil
}

func (s *stubCatalogService) ListItems(ctx context.Context, params catalog.ListParams) (*catalog.ItemList, error) {
	s.params = &params
	if s.list != nil {
		return s.list, nil
	}
	return &catalog.ItemList{}, nil
}

func TestCreateItem(t *testing.T) {
	logg := testLogger()
	ownerID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		CreateItem(&stubCatalogService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user missing, got %d", rec.Code)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		body := `{"name":"Drill","description":"A drill","category":"spaceships","price_amount_cents":2000,"price_unit":"daily"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithUserID(req.Context(), ownerID.String()))
		rec := httptest.NewRecorder()
		CreateItem(&stubCatalogService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad category, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body := `{"name":"Drill","description":"A drill","category":"tools","price_amount_cents":2000,"price_unit":"daily"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.WithUserID(req.Context(), ownerID.String()))

		stub := &stubCatalogService{}
		rec := httptest.NewRecorder()
		CreateItem(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on success, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatalf("expected CreateItem to be invoked")
		}
		if stub.created.OwnerID != ownerID {
			t.Fatalf("owner must come from the authenticated user")
		}
		if stub.created.Category != enums.ItemCategoryTools {
			t.Fatalf("expected tools category, got %s", stub.created.Category)
		}
	})
}

func TestGetItem(t *testing.T) {
	logg := testLogger()
	itemID := uuid.New()
	stub := &stubCatalogService{item: &catalog.ItemView{ID: itemID, Name: "Drill"}}

	makeRequest := func(param string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+param, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("itemId", param)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		GetItem(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("invalid id", func(t *testing.T) {
		if rec := makeRequest("not-a-uuid"); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if rec := makeRequest(uuid.NewString()); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown item, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := makeRequest(itemID.String())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Drill") {
			t.Fatalf("expected item payload, got %s", rec.Body.String())
		}
	})
}

func TestListItemsParsesFilters(t *testing.T) {
	logg := testLogger()
	stub := &stubCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?limit=5&category=tools&availability=available", nil)
	rec := httptest.NewRecorder()
	ListItems(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.params == nil {
		t.Fatalf("expected ListItems to be invoked")
	}
	if stub.params.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", stub.params.Limit)
	}
	if stub.params.Category == nil || *stub.params.Category != enums.ItemCategoryTools {
		t.Fatalf("expected tools filter, got %v", stub.params.Category)
	}
	if stub.params.Availability == nil || *stub.params.Availability != enums.ItemAvailabilityAvailable {
		t.Fatalf("expected availability filter, got %v", stub.params.Availability)
	}
}

func TestListItemsRejectsBadFilters(t *testing.T) {
	logg := testLogger()

	for name, query := range map[string]string{
		"bad limit":    "?limit=abc",
		"bad owner":    "?owner_id=nope",
		"bad category": "?category=spaceships",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/items"+query, nil)
			rec := httptest.NewRecorder()
			ListItems(&stubCatalogService{}, logg).ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
