package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db"
	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the customer behavior ledger operations.
type Service interface {
	AddStrike(ctx context.Context, input AddStrikeInput) (*StrikeResult, error)
	ResolveStrike(ctx context.Context, input ResolveStrikeInput) (*StrikeResult, error)
	Get(ctx context.Context, customerID uuid.UUID) (*BehaviorView, error)
	ListFlagged(ctx context.Context, params pagination.Params) (*FlaggedList, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a behavior service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("behavior repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) AddStrike(ctx context.Context, input AddStrikeInput) (*StrikeResult, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if !input.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid strike reason")
	}
	if !input.Severity.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid strike severity")
	}
	if input.AdditionalChargeCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "additional charge cannot be negative")
	}
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	var result StrikeResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		behavior, err := s.findOrCreateBehavior(ctx, repo, input.CustomerID)
		if err != nil {
			return err
		}

		strike := &models.Strike{
			CustomerID:            input.CustomerID,
			ItemID:                input.ItemID,
			Reason:                input.Reason,
			Severity:              input.Severity,
			Description:           input.Description,
			AdditionalChargeCents: input.AdditionalChargeCents,
			OccurredAt:            occurredAt,
		}
		if err := repo.CreateStrike(ctx, strike); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record strike")
		}

		unresolvedSevere, err := repo.CountUnresolvedSevere(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unresolved severe strikes")
		}

		total := behavior.TotalStrikes + 1
		standing := escalateStanding(behavior.Standing, total, unresolvedSevere)

		rows, err := repo.UpdateBehaviorCAS(ctx, input.CustomerID, behavior.Version, map[string]any{
			"total_strikes": total,
			"standing":      standing,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update behavior ledger")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "behavior ledger was modified concurrently")
		}

		result = StrikeResult{
			StrikeID:     strike.ID,
			Standing:     standing,
			TotalStrikes: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ResolveStrike(ctx context.Context, input ResolveStrikeInput) (*StrikeResult, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.StrikeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "strike id required")
	}

	var result StrikeResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		strike, err := repo.FindStrike(ctx, input.StrikeID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "strike not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load strike")
		}
		if strike.CustomerID != input.CustomerID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "strike not found")
		}
		if strike.Resolved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "strike already resolved")
		}

		behavior, err := repo.FindBehavior(ctx, input.CustomerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "behavior record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load behavior record")
		}

		now := time.Now().UTC()
		if err := repo.UpdateStrike(ctx, strike.ID, map[string]any{
			"resolved":         true,
			"resolved_at":      now,
			"resolution_notes": input.ResolutionNotes,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve strike")
		}

		unresolvedSevere, err := repo.CountUnresolvedSevere(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unresolved severe strikes")
		}

		total := behavior.TotalStrikes - 1
		if total < 0 {
			total = 0
		}

		// Resolving only ever demotes to good, and only from the lowest tier.
		// Suspended and banned customers keep their standing until the count
		// drops below the warning threshold with no unresolved severe strikes.
		standing := behavior.Standing
		if total < 4 && unresolvedSevere == 0 {
			standing = enums.CustomerStandingGood
		}

		rows, err := repo.UpdateBehaviorCAS(ctx, input.CustomerID, behavior.Version, map[string]any{
			"total_strikes": total,
			"standing":      standing,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update behavior ledger")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "behavior ledger was modified concurrently")
		}

		result = StrikeResult{
			StrikeID:     strike.ID,
			Standing:     standing,
			TotalStrikes: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*BehaviorView, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	behavior, err := s.repo.FindBehavior(ctx, customerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Customers with no recorded strikes are implicitly in good standing.
			return &BehaviorView{
				CustomerID:   customerID,
				Standing:     enums.CustomerStandingGood,
				TotalStrikes: 0,
				Strikes:      []StrikeView{},
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load behavior record")
	}

	strikes, err := s.repo.ListStrikes(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list strikes")
	}

	views := make([]StrikeView, 0, len(strikes))
	for _, strike := range strikes {
		views = append(views, StrikeView{
			ID:                    strike.ID,
			ItemID:                strike.ItemID,
			Reason:                strike.Reason,
			Severity:              strike.Severity,
			Description:           strike.Description,
			AdditionalChargeCents: strike.AdditionalChargeCents,
			OccurredAt:            strike.OccurredAt,
			Resolved:              strike.Resolved,
			ResolvedAt:            strike.ResolvedAt,
			ResolutionNotes:       strike.ResolutionNotes,
		})
	}

	return &BehaviorView{
		CustomerID:   behavior.CustomerID,
		Standing:     behavior.Standing,
		TotalStrikes: behavior.TotalStrikes,
		Strikes:      views,
	}, nil
}

func (s *service) ListFlagged(ctx context.Context, params pagination.Params) (*FlaggedList, error) {
	list, err := s.repo.ListFlagged(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list flagged customers")
	}
	return list, nil
}

func (s *service) findOrCreateBehavior(ctx context.Context, repo Repository, customerID uuid.UUID) (*models.CustomerBehavior, error) {
	behavior, err := repo.FindBehavior(ctx, customerID)
	if err == nil {
		return behavior, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load behavior record")
	}

	fresh := &models.CustomerBehavior{
		CustomerID: customerID,
		Standing:   enums.CustomerStandingGood,
	}
	if createErr := repo.CreateBehavior(ctx, fresh); createErr != nil {
		if !db.IsUniqueViolation(createErr, "customer_behaviors_pkey") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create behavior record")
		}
		// A concurrent first strike created the row; fall back to it.
		behavior, retryErr := repo.FindBehavior(ctx, customerID)
		if retryErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create behavior record")
		}
		return behavior, nil
	}
	return fresh, nil
}

// escalateStanding applies the four-tier rule. Adding strikes never improves
// standing; below every threshold the current standing is kept.
func escalateStanding(current enums.CustomerStanding, total, unresolvedSevere int) enums.CustomerStanding {
	switch {
	case total >= 10 || unresolvedSevere >= 3:
		return enums.CustomerStandingBanned
	case total >= 7 || unresolvedSevere >= 2:
		return enums.CustomerStandingSuspended
	case total >= 4 || unresolvedSevere >= 1:
		return enums.CustomerStandingWarning
	default:
		return current
	}
}
