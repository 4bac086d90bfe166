package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/api/middleware"
	"github.com/rentiva/rentiva-backend/api/responses"
	"github.com/rentiva/rentiva-backend/api/validators"
	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
)

// CustomerBehavior returns the strike ledger for one customer. Customers may
// only read their own; admins may read anyone's.
func CustomerBehavior(svc behavior.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "behavior service unavailable"))
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

		view, err := svc.Get(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// AdminAddStrike records a manual strike against a customer.
func AdminAddStrike(svc behavior.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "behavior service unavailable"))
			return
		}

		customerID, err := pathUUID(r, "customerId", "invalid customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addStrikeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toAddInput(customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddStrike(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminResolveStrike marks a strike resolved and re-evaluates standing.
func AdminResolveStrike(svc behavior.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "behavior service unavailable"))
			return
		}

		customerID, err := pathUUID(r, "customerId", "invalid customer id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		strikeID, err := pathUUID(r, "strikeId", "invalid strike id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload resolveStrikeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ResolveStrike(r.Context(), behavior.ResolveStrikeInput{
			CustomerID:      customerID,
			StrikeID:        strikeID,
			ResolutionNotes: trimOptional(payload.ResolutionNotes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminFlagged pages customers whose standing is below good.
func AdminFlagged(svc behavior.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "behavior service unavailable"))
			return
		}

		params, err := queryPagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListFlagged(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

type addStrikeRequest struct {
	ItemID                string  `json:"item_id,omitempty"`
	Reason                string  `json:"reason" validate:"required"`
	Severity              string  `json:"severity" validate:"required"`
	Description           *string `json:"description,omitempty"`
	AdditionalChargeCents int64   `json:"additional_charge_cents" validate:"omitempty,min=0"`
	OccurredAt            string  `json:"occurred_at,omitempty"`
}

func (r addStrikeRequest) toAddInput(customerID uuid.UUID) (behavior.AddStrikeInput, error) {
	reason, err := enums.ParseStrikeReason(strings.TrimSpace(r.Reason))
	if err != nil {
		return behavior.AddStrikeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reason")
	}

	severity, err := enums.ParseStrikeSeverity(strings.TrimSpace(r.Severity))
	if err != nil {
		return behavior.AddStrikeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid severity")
	}

	input := behavior.AddStrikeInput{
		CustomerID:            customerID,
		Reason:                reason,
		Severity:              severity,
		Description:           trimOptional(r.Description),
		AdditionalChargeCents: r.AdditionalChargeCents,
		OccurredAt:            time.Now().UTC(),
	}

	if raw := strings.TrimSpace(r.ItemID); raw != "" {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			return behavior.AddStrikeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
		}
		input.ItemID = &itemID
	}
	if raw := strings.TrimSpace(r.OccurredAt); raw != "" {
		occurredAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return behavior.AddStrikeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid occurrence timestamp")
		}
		input.OccurredAt = occurredAt.UTC()
	}
	return input, nil
}

type resolveStrikeRequest struct {
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
}

func requireSelfOrAdmin(r *http.Request, customerID uuid.UUID) error {
	if middleware.RoleFromContext(r.Context()) == string(enums.ActorRoleAdmin) {
		return nil
	}
	userID, err := requestUserID(r)
	if err != nil {
		return err
	}
	if userID != customerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another customer's records")
	}
	return nil
}
