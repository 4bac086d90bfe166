package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
)

// Repository defines persistence operations for the item catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.RentalItem) error
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.RentalItem, error)
	List(ctx context.Context, query listQuery) ([]models.RentalItem, error)
}
