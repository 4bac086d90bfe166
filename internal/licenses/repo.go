package licenses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
)

// Repository reads the license table. License lifecycle (purchase, renewal,
// revocation) is managed by an external system; this side only consults it.
type Repository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.License, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a licenses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.License, error) {
	var license models.License
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&license).Error
	if err != nil {
		return nil, err
	}
	return &license, nil
}
