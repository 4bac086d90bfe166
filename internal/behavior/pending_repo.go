package behavior

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
)

// PendingStrikeRepository drives the durable strike retry queue.
type PendingStrikeRepository interface {
	ListBatch(ctx context.Context, limit, maxAttempts int) ([]models.PendingStrike, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, message string) error
}

type pendingStrikeRepository struct {
	db *gorm.DB
}

// NewPendingStrikeRepository builds the retry queue repository.
func NewPendingStrikeRepository(db *gorm.DB) PendingStrikeRepository {
	return &pendingStrikeRepository{db: db}
}

func (r *pendingStrikeRepository) ListBatch(ctx context.Context, limit, maxAttempts int) ([]models.PendingStrike, error) {
	var pending []models.PendingStrike
	err := r.db.WithContext(ctx).
		Where("attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *pendingStrikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PendingStrike{}).Error
}

func (r *pendingStrikeRepository) RecordFailure(ctx context.Context, id uuid.UUID, message string) error {
	return r.db.WithContext(ctx).
		Model(&models.PendingStrike{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": message,
		}).Error
}
