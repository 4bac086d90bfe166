package rentals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

type historyQuery struct {
	limit  int
	cursor *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rentals repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.RentalItem, error) {
	var item models.RentalItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) TransitionItemCAS(ctx context.Context, itemID uuid.UUID, version int64, updates map[string]any) (int64, error) {
	updates["version"] = gorm.Expr("version + 1")
	res := r.db.WithContext(ctx).
		Model(&models.RentalItem{}).
		Where("id = ? AND version = ?", itemID, version).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) CreateCompletedRental(ctx context.Context, rental *models.CompletedRental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *repository) ListCompletedByItem(ctx context.Context, itemID uuid.UUID, query historyQuery) ([]models.CompletedRental, error) {
	return r.listCompleted(ctx, "item_id = ?", itemID, query)
}

func (r *repository) ListCompletedByCustomer(ctx context.Context, customerID uuid.UUID, query historyQuery) ([]models.CompletedRental, error) {
	return r.listCompleted(ctx, "customer_id = ?", customerID, query)
}

func (r *repository) listCompleted(ctx context.Context, where string, id uuid.UUID, query historyQuery) ([]models.CompletedRental, error) {
	q := r.db.WithContext(ctx).
		Where(where, id).
		Order("created_at DESC, id DESC").
		Limit(query.limit)
	if query.cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			query.cursor.CreatedAt, query.cursor.CreatedAt, query.cursor.ID,
		)
	}

	var rentals []models.CompletedRental
	if err := q.Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *repository) ListActiveByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.RentalItem, error) {
	var items []models.RentalItem
	err := r.db.WithContext(ctx).
		Where("current_customer_id = ? AND availability = ?", customerID, enums.ItemAvailabilityUnavailable).
		Order("current_start_date DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) EnqueuePendingStrike(ctx context.Context, pending *models.PendingStrike) error {
	return r.db.WithContext(ctx).Create(pending).Error
}
