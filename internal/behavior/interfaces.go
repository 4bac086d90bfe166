package behavior

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

// Repository defines persistence operations for the behavior ledger tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindBehavior(ctx context.Context, customerID uuid.UUID) (*models.CustomerBehavior, error)
	CreateBehavior(ctx context.Context, behavior *models.CustomerBehavior) error
	UpdateBehaviorCAS(ctx context.Context, customerID uuid.UUID, version int64, updates map[string]any) (int64, error)
	CreateStrike(ctx context.Context, strike *models.Strike) error
	FindStrike(ctx context.Context, strikeID uuid.UUID) (*models.Strike, error)
	UpdateStrike(ctx context.Context, strikeID uuid.UUID, updates map[string]any) error
	ListStrikes(ctx context.Context, customerID uuid.UUID) ([]models.Strike, error)
	CountUnresolvedSevere(ctx context.Context, customerID uuid.UUID) (int, error)
	ListFlagged(ctx context.Context, params pagination.Params) (*FlaggedList, error)
}
