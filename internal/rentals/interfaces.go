package rentals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
)

// Repository defines persistence operations for the rental item ledger and
// its append-only history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.RentalItem, error)
	// TransitionItemCAS applies updates only when the stored version still
	// matches, bumping the version in the same statement.
	TransitionItemCAS(ctx context.Context, itemID uuid.UUID, version int64, updates map[string]any) (int64, error)
	CreateCompletedRental(ctx context.Context, rental *models.CompletedRental) error
	ListCompletedByItem(ctx context.Context, itemID uuid.UUID, query historyQuery) ([]models.CompletedRental, error)
	ListCompletedByCustomer(ctx context.Context, customerID uuid.UUID, query historyQuery) ([]models.CompletedRental, error)
	ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.RentalItem, error)
	EnqueuePendingStrike(ctx context.Context, pending *models.PendingStrike) error
}
