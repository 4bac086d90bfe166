package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/api/middleware"
	"github.com/rentiva/rentiva-backend/api/responses"
	"github.com/rentiva/rentiva-backend/api/validators"
	"github.com/rentiva/rentiva-backend/internal/catalog"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

// CreateItem lists a new rental item owned by the authenticated user.
func CreateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		ownerID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput(ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// GetItem returns one listing by id.
func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemID, err := pathUUID(r, "itemId", "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ListItems pages the catalog with optional owner, category, and availability filters.
func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := catalog.ListParams{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("owner_id")); raw != "" {
			ownerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid owner id"))
				return
			}
			params.OwnerID = &ownerID
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseItemCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			params.Category = &category
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("availability")); raw != "" {
			availability, err := enums.ParseItemAvailability(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability"))
				return
			}
			params.Availability = &availability
		}

		list, err := svc.ListItems(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

type createItemRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Category         string `json:"category" validate:"required"`
	PriceAmountCents int64  `json:"price_amount_cents" validate:"required,min=1"`
	PriceUnit        string `json:"price_unit" validate:"required"`
}

func (r createItemRequest) toCreateInput(ownerID uuid.UUID) (catalog.CreateItemInput, error) {
	category, err := enums.ParseItemCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return catalog.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	unit, err := enums.ParsePriceUnit(strings.TrimSpace(r.PriceUnit))
	if err != nil {
		return catalog.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price unit")
	}

	return catalog.CreateItemInput{
		OwnerID:          ownerID,
		Name:             strings.TrimSpace(r.Name),
		Description:      strings.TrimSpace(r.Description),
		Category:         category,
		PriceAmountCents: r.PriceAmountCents,
		PriceUnit:        unit,
	}, nil
}

func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return userID, nil
}

func pathUUID(r *http.Request, param, message string) (uuid.UUID, error) {
	value, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, message)
	}
	return value, nil
}
