package rentals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/internal/pricing"
	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type behaviorService interface {
	AddStrike(ctx context.Context, input behavior.AddStrikeInput) (*behavior.StrikeResult, error)
	Get(ctx context.Context, customerID uuid.UUID) (*behavior.BehaviorView, error)
}

// Service defines the rental lifecycle operations.
type Service interface {
	Rent(ctx context.Context, input RentInput) (*RentalRecord, error)
	Return(ctx context.Context, input ReturnInput) (*ReturnReceipt, error)
	Cancel(ctx context.Context, input CancelInput) (*CancelResult, error)
	ItemHistory(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*ItemHistory, error)
	CustomerRentals(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*CustomerRentals, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	behavior behaviorService
	refunds  pricing.RefundPolicy
	lateFees pricing.LateFeePolicy
	logg     *logger.Logger
}

// NewService builds a rentals service with the required dependencies.
func NewService(repo Repository, tx txRunner, behaviorSvc behaviorService, refunds pricing.RefundPolicy, lateFees pricing.LateFeePolicy, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rentals repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if behaviorSvc == nil {
		return nil, fmt.Errorf("behavior service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		behavior: behaviorSvc,
		refunds:  refunds,
		lateFees: lateFees,
		logg:     logg,
	}, nil
}

func (s *service) Rent(ctx context.Context, input RentInput) (*RentalRecord, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.DurationDays < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental duration must be at least one day")
	}
	if input.DepositCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deposit cannot be negative")
	}

	item, err := s.repo.FindItem(ctx, input.ItemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if item.Availability != enums.ItemAvailabilityAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item is currently rented")
	}

	total, err := pricing.TotalAmountCents(item.PriceAmountCents, item.PriceUnit, input.DurationDays)
	if err != nil {
		return nil, err
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	endDate := startDate.AddDate(0, 0, input.DurationDays)

	rows, err := s.repo.TransitionItemCAS(ctx, item.ID, item.Version, map[string]any{
		"availability":          enums.ItemAvailabilityUnavailable,
		"current_customer_id":   input.CustomerID,
		"current_start_date":    startDate,
		"current_end_date":      endDate,
		"current_deposit_cents": input.DepositCents,
		"current_total_cents":   total,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "transition item to rented")
	}
	if rows == 0 {
		// Lost the race. One re-read decides whether another rental got
		// there first or the caller should simply retry.
		fresh, readErr := s.repo.FindItem(ctx, item.ID)
		if readErr == nil && fresh.Availability == enums.ItemAvailabilityUnavailable {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item is currently rented")
		}
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item was modified concurrently")
	}

	return &RentalRecord{
		ItemID:       item.ID,
		CustomerID:   input.CustomerID,
		StartDate:    startDate,
		EndDate:      endDate,
		DepositCents: input.DepositCents,
		TotalCents:   total,
		Availability: enums.ItemAvailabilityUnavailable,
	}, nil
}

func (s *service) Return(ctx context.Context, input ReturnInput) (*ReturnReceipt, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid return condition")
	}
	if input.ExtraChargeCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "extra charge cannot be negative")
	}

	item, err := s.repo.FindItem(ctx, input.ItemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.Availability != enums.ItemAvailabilityUnavailable || item.CurrentCustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item has no active rental")
	}
	if *item.CurrentCustomerID != input.CustomerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "rental belongs to another customer")
	}

	returnedAt := input.ReturnedAt
	if returnedAt.IsZero() {
		returnedAt = time.Now().UTC()
	}

	deposit := int64(0)
	if item.CurrentDepositCents != nil {
		deposit = *item.CurrentDepositCents
	}
	total := int64(0)
	if item.CurrentTotalCents != nil {
		total = *item.CurrentTotalCents
	}
	endDate := *item.CurrentEndDate

	lateFee, daysLate := pricing.LateFee(endDate, returnedAt, item.PriceAmountCents, s.lateFees)
	depositRefund := pricing.DepositRefund(deposit, input.Condition, s.refunds)
	totalCharges := lateFee + input.ExtraChargeCents

	condition := input.Condition
	archived := &models.CompletedRental{
		ItemID:             item.ID,
		CustomerID:         input.CustomerID,
		Outcome:            enums.RentalOutcomeCompleted,
		StartDate:          *item.CurrentStartDate,
		EndDate:            endDate,
		ReturnedAt:         &returnedAt,
		DepositCents:       deposit,
		TotalCents:         total,
		DaysLate:           daysLate,
		LateFeeCents:       lateFee,
		DepositRefundCents: depositRefund,
		ExtraChargeCents:   input.ExtraChargeCents,
		ReturnCondition:    &condition,
		Comments:           input.Comments,
	}

	// Archive and release the item in one transaction. Strike writes follow
	// the commit so a behavior failure never holds the item hostage.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.CreateCompletedRental(ctx, archived); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive rental")
		}

		rows, err := repo.TransitionItemCAS(ctx, item.ID, item.Version, clearRentalUpdates())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release item")
		}
		if rows == 0 {
			return errCASLost
		}
		return nil
	})
	if err == errCASLost {
		// One reconciling re-read: if the item is already back to available
		// the race was another return finishing first.
		fresh, readErr := s.repo.FindItem(ctx, item.ID)
		if readErr == nil && fresh.Availability == enums.ItemAvailabilityAvailable {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item has no active rental")
		}
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item was modified concurrently")
	}
	if err != nil {
		return nil, err
	}

	standing := s.applyReturnStrikes(ctx, item, input, returnedAt, daysLate, lateFee)

	return &ReturnReceipt{
		ItemID:             item.ID,
		CustomerID:         input.CustomerID,
		ReturnedAt:         returnedAt,
		Condition:          input.Condition,
		DaysLate:           daysLate,
		LateFeeCents:       lateFee,
		DepositRefundCents: depositRefund,
		TotalChargesCents:  totalCharges,
		FinalAmountCents:   depositRefund - totalCharges,
		Standing:           standing,
	}, nil
}

// applyReturnStrikes records the late and damaged strikes after the item
// transition committed. Each strike that cannot be applied is persisted to
// the pending queue with its already-computed facts for the replay worker.
func (s *service) applyReturnStrikes(ctx context.Context, item *models.RentalItem, input ReturnInput, returnedAt time.Time, daysLate int, lateFee int64) enums.CustomerStanding {
	standing := enums.CustomerStandingGood
	standingKnown := false

	if daysLate > 0 {
		description := fmt.Sprintf("returned %d day(s) late", daysLate)
		strike := behavior.AddStrikeInput{
			CustomerID:            input.CustomerID,
			ItemID:                &item.ID,
			Reason:                enums.StrikeReasonLateReturn,
			Severity:              pricing.SeverityForDaysLate(daysLate),
			Description:           &description,
			AdditionalChargeCents: lateFee,
			OccurredAt:            returnedAt,
		}
		if result, err := s.behavior.AddStrike(ctx, strike); err != nil {
			s.enqueueStrike(ctx, strike, err)
		} else {
			standing = result.Standing
			standingKnown = true
		}
	}

	if input.Condition == enums.ItemConditionDamaged {
		description := "item returned damaged"
		strike := behavior.AddStrikeInput{
			CustomerID:            input.CustomerID,
			ItemID:                &item.ID,
			Reason:                enums.StrikeReasonDamagedItem,
			Severity:              enums.StrikeSeveritySevere,
			Description:           &description,
			AdditionalChargeCents: input.ExtraChargeCents,
			OccurredAt:            returnedAt,
		}
		if result, err := s.behavior.AddStrike(ctx, strike); err != nil {
			s.enqueueStrike(ctx, strike, err)
		} else {
			standing = result.Standing
			standingKnown = true
		}
	}

	if !standingKnown {
		if view, err := s.behavior.Get(ctx, input.CustomerID); err == nil {
			standing = view.Standing
		} else {
			s.logg.Warn(ctx, "could not read customer standing for return receipt")
		}
	}
	return standing
}

func (s *service) enqueueStrike(ctx context.Context, strike behavior.AddStrikeInput, cause error) {
	s.logg.Error(ctx, "strike write failed, queueing for replay", cause)

	message := cause.Error()
	pending := &models.PendingStrike{
		CustomerID:            strike.CustomerID,
		ItemID:                strike.ItemID,
		Reason:                strike.Reason,
		Severity:              strike.Severity,
		Description:           strike.Description,
		AdditionalChargeCents: strike.AdditionalChargeCents,
		OccurredAt:            strike.OccurredAt,
		LastError:             &message,
	}
	if err := s.repo.EnqueuePendingStrike(ctx, pending); err != nil {
		s.logg.Error(ctx, "could not queue pending strike", err)
	}
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*CancelResult, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	item, err := s.repo.FindItem(ctx, input.ItemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.Availability != enums.ItemAvailabilityUnavailable || item.CurrentCustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item has no active rental")
	}

	canceledAt := time.Now().UTC()
	customerID := *item.CurrentCustomerID
	deposit := int64(0)
	if item.CurrentDepositCents != nil {
		deposit = *item.CurrentDepositCents
	}
	total := int64(0)
	if item.CurrentTotalCents != nil {
		total = *item.CurrentTotalCents
	}

	archived := &models.CompletedRental{
		ItemID:       item.ID,
		CustomerID:   customerID,
		Outcome:      enums.RentalOutcomeCancelled,
		StartDate:    *item.CurrentStartDate,
		EndDate:      *item.CurrentEndDate,
		ReturnedAt:   &canceledAt,
		DepositCents: deposit,
		TotalCents:   total,
		Comments:     input.Comments,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.CreateCompletedRental(ctx, archived); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive cancelled rental")
		}

		rows, err := repo.TransitionItemCAS(ctx, item.ID, item.Version, clearRentalUpdates())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release item")
		}
		if rows == 0 {
			return errCASLost
		}
		return nil
	})
	if err == errCASLost {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item was modified concurrently")
	}
	if err != nil {
		return nil, err
	}

	return &CancelResult{
		ItemID:     item.ID,
		CustomerID: customerID,
		Outcome:    enums.RentalOutcomeCancelled,
		CanceledAt: canceledAt,
	}, nil
}

func (s *service) ItemHistory(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*ItemHistory, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	if _, err := s.repo.FindItem(ctx, itemID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	query, limit, err := buildHistoryQuery(params)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCompletedByItem(ctx, itemID, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list item history")
	}

	entries, nextCursor := pageHistory(rows, limit)
	return &ItemHistory{
		ItemID:     itemID,
		Rentals:    entries,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) CustomerRentals(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*CustomerRentals, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	active, err := s.repo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active rentals")
	}

	query, limit, err := buildHistoryQuery(params)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCompletedByCustomer(ctx, customerID, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer history")
	}

	activeViews := make([]ActiveRental, 0, len(active))
	for _, item := range active {
		view := ActiveRental{
			ItemID:   item.ID,
			ItemName: item.Name,
		}
		if item.CurrentStartDate != nil {
			view.StartDate = *item.CurrentStartDate
		}
		if item.CurrentEndDate != nil {
			view.EndDate = *item.CurrentEndDate
		}
		if item.CurrentDepositCents != nil {
			view.DepositCents = *item.CurrentDepositCents
		}
		if item.CurrentTotalCents != nil {
			view.TotalCents = *item.CurrentTotalCents
		}
		activeViews = append(activeViews, view)
	}

	entries, nextCursor := pageHistory(rows, limit)
	return &CustomerRentals{
		CustomerID: customerID,
		Active:     activeViews,
		Past:       entries,
		NextCursor: nextCursor,
	}, nil
}

// errCASLost flags a lost optimistic-lock race inside a transaction closure
// so the caller can map it after rollback.
var errCASLost = pkgerrors.New(pkgerrors.CodeConflict, "rental state changed concurrently")

func clearRentalUpdates() map[string]any {
	return map[string]any{
		"availability":          enums.ItemAvailabilityAvailable,
		"current_customer_id":   nil,
		"current_start_date":    nil,
		"current_end_date":      nil,
		"current_deposit_cents": nil,
		"current_total_cents":   nil,
	}
}

func buildHistoryQuery(params pagination.Params) (historyQuery, int, error) {
	query := historyQuery{limit: pagination.LimitWithBuffer(params.Limit)}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return historyQuery{}, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}
	return query, pagination.NormalizeLimit(params.Limit), nil
}

func pageHistory(rows []models.CompletedRental, limit int) ([]HistoryEntry, string) {
	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{
			ID:                 row.ID,
			ItemID:             row.ItemID,
			CustomerID:         row.CustomerID,
			Outcome:            row.Outcome,
			StartDate:          row.StartDate,
			EndDate:            row.EndDate,
			ReturnedAt:         row.ReturnedAt,
			DepositCents:       row.DepositCents,
			TotalCents:         row.TotalCents,
			DaysLate:           row.DaysLate,
			LateFeeCents:       row.LateFeeCents,
			DepositRefundCents: row.DepositRefundCents,
			ExtraChargeCents:   row.ExtraChargeCents,
			ReturnCondition:    row.ReturnCondition,
			Comments:           row.Comments,
			CreatedAt:          row.CreatedAt,
		})
	}
	return entries, nextCursor
}
