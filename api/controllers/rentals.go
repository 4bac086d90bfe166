package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/api/responses"
	"github.com/rentiva/rentiva-backend/api/validators"
	"github.com/rentiva/rentiva-backend/internal/rentals"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

// RentItem starts a rental of the item for the authenticated customer.
func RentItem(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
			return
		}

		customerID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemId", "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rentItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toRentInput(itemID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Rent(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ReturnItem settles the active rental and reports the receipt.
func ReturnItem(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
			return
		}

		customerID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathUUID(r, "itemId", "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload returnItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toReturnInput(itemID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Return(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}

// ItemHistory pages the archived rentals of one item.
func ItemHistory(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
			return
		}

		itemID, err := pathUUID(r, "itemId", "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := queryPagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.ItemHistory(r.Context(), itemID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}

// CustomerRentals lists a customer's active and archived rentals. Customers
// may only read their own; admins may read anyone's.
func CustomerRentals(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
			return
		}

		customerID, err := pathUUID(r, "customerId", "invalid customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := requireSelfOrAdmin(r, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := queryPagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CustomerRentals(r.Context(), customerID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminCancelRental force-ends an active rental without fees or strikes.
func AdminCancelRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rental service unavailable"))
			return
		}

		itemID, err := pathUUID(r, "itemId", "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cancelRentalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Cancel(r.Context(), rentals.CancelInput{
			ItemID:   itemID,
			Comments: trimOptional(payload.Comments),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type rentItemRequest struct {
	DurationDays int    `json:"duration_days" validate:"required,min=1"`
	DepositCents int64  `json:"deposit_cents" validate:"omitempty,min=0"`
	StartDate    string `json:"start_date,omitempty"`
}

func (r rentItemRequest) toRentInput(itemID, customerID uuid.UUID) (rentals.RentInput, error) {
	input := rentals.RentInput{
		ItemID:       itemID,
		CustomerID:   customerID,
		DurationDays: r.DurationDays,
		DepositCents: r.DepositCents,
	}
	if raw := strings.TrimSpace(r.StartDate); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return rentals.RentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid start date")
		}
		input.StartDate = start.UTC()
	}
	return input, nil
}

type returnItemRequest struct {
	Condition        string  `json:"condition" validate:"required"`
	Comments         *string `json:"comments,omitempty"`
	ExtraChargeCents int64   `json:"extra_charge_cents" validate:"omitempty,min=0"`
	ReturnedAt       string  `json:"returned_at,omitempty"`
}

func (r returnItemRequest) toReturnInput(itemID, customerID uuid.UUID) (rentals.ReturnInput, error) {
	condition, err := enums.ParseItemCondition(strings.TrimSpace(r.Condition))
	if err != nil {
		return rentals.ReturnInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}

	input := rentals.ReturnInput{
		ItemID:           itemID,
		CustomerID:       customerID,
		Condition:        condition,
		Comments:         trimOptional(r.Comments),
		ExtraChargeCents: r.ExtraChargeCents,
	}
	if raw := strings.TrimSpace(r.ReturnedAt); raw != "" {
		returnedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return rentals.ReturnInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid return timestamp")
		}
		input.ReturnedAt = returnedAt.UTC()
	}
	return input, nil
}

type cancelRentalRequest struct {
	Comments *string `json:"comments,omitempty"`
}

func queryPagination(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

// maxFreeTextLen caps comments and notes before they reach storage.
const maxFreeTextLen = 1000

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := validators.SanitizeString(*value, maxFreeTextLen)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
