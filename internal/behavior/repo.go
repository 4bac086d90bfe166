package behavior

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a behavior repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindBehavior(ctx context.Context, customerID uuid.UUID) (*models.CustomerBehavior, error) {
	var behavior models.CustomerBehavior
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&behavior).Error
	if err != nil {
		return nil, err
	}
	return &behavior, nil
}

func (r *repository) CreateBehavior(ctx context.Context, behavior *models.CustomerBehavior) error {
	return r.db.WithContext(ctx).Create(behavior).Error
}

// UpdateBehaviorCAS applies updates only when the stored version still
// matches, bumping the version in the same statement. Returns rows affected.
func (r *repository) UpdateBehaviorCAS(ctx context.Context, customerID uuid.UUID, version int64, updates map[string]any) (int64, error) {
	updates["version"] = gorm.Expr("version + 1")
	res := r.db.WithContext(ctx).
		Model(&models.CustomerBehavior{}).
		Where("customer_id = ? AND version = ?", customerID, version).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) CreateStrike(ctx context.Context, strike *models.Strike) error {
	return r.db.WithContext(ctx).Create(strike).Error
}

func (r *repository) FindStrike(ctx context.Context, strikeID uuid.UUID) (*models.Strike, error) {
	var strike models.Strike
	err := r.db.WithContext(ctx).
		Where("id = ?", strikeID).
		First(&strike).Error
	if err != nil {
		return nil, err
	}
	return &strike, nil
}

func (r *repository) UpdateStrike(ctx context.Context, strikeID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Strike{}).
		Where("id = ?", strikeID).
		Updates(updates).Error
}

func (r *repository) ListStrikes(ctx context.Context, customerID uuid.UUID) ([]models.Strike, error) {
	var strikes []models.Strike
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&strikes).Error
	if err != nil {
		return nil, err
	}
	return strikes, nil
}

func (r *repository) CountUnresolvedSevere(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Strike{}).
		Where("customer_id = ? AND severity = ? AND resolved = ?", customerID, enums.StrikeSeveritySevere, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListFlagged pages through customers outside good standing, worst offenders
// first. The cursor is keyset-based on (total_strikes, customer_id) because
// the ordering is by strike count rather than recency.
func (r *repository) ListFlagged(ctx context.Context, params pagination.Params) (*FlaggedList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.CustomerBehavior{}).
		Where("standing IN ?", []enums.CustomerStanding{
			enums.CustomerStandingWarning,
			enums.CustomerStandingSuspended,
			enums.CustomerStandingBanned,
		}).
		Order("total_strikes DESC, customer_id ASC").
		Limit(limit)

	cursor, err := parseFlaggedCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(total_strikes < ?) OR (total_strikes = ? AND customer_id > ?)",
			cursor.totalStrikes, cursor.totalStrikes, cursor.customerID,
		)
	}

	var rows []models.CustomerBehavior
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = encodeFlaggedCursor(last.TotalStrikes, last.CustomerID)
	}

	customers := make([]FlaggedCustomer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, FlaggedCustomer{
			CustomerID:   row.CustomerID,
			Standing:     row.Standing,
			TotalStrikes: row.TotalStrikes,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	return &FlaggedList{Customers: customers, NextCursor: nextCursor}, nil
}

type flaggedCursor struct {
	totalStrikes int
	customerID   uuid.UUID
}

func encodeFlaggedCursor(totalStrikes int, customerID uuid.UUID) string {
	payload := fmt.Sprintf("%d|%s", totalStrikes, customerID)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func parseFlaggedCursor(value string) (*flaggedCursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}
	total, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor strike count: %w", err)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &flaggedCursor{totalStrikes: total, customerID: id}, nil
}
