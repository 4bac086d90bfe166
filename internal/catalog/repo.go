package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

type listQuery struct {
	limit        int
	cursor       *pagination.Cursor
	ownerID      *uuid.UUID
	category     *enums.ItemCategory
	availability *enums.ItemAvailability
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.RentalItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, itemID uuid.UUID) (*models.RentalItem, error) {
	var item models.RentalItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, query listQuery) ([]models.RentalItem, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Limit(query.limit)

	if query.ownerID != nil {
		q = q.Where("owner_id = ?", *query.ownerID)
	}
	if query.category != nil {
		q = q.Where("category = ?", *query.category)
	}
	if query.availability != nil {
		q = q.Where("availability = ?", *query.availability)
	}
	if query.cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			query.cursor.CreatedAt, query.cursor.CreatedAt, query.cursor.ID,
		)
	}

	var items []models.RentalItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
