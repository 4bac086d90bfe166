package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/pagination"
)

const maxNameLength = 160

// Service exposes catalog reads and listing creation.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemView, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemView, error)
	ListItems(ctx context.Context, params ListParams) (*ItemList, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemView, error) {
	if input.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(name) > maxNameLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is too long")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.PriceAmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if !input.PriceUnit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid price unit")
	}

	item := &models.RentalItem{
		OwnerID:          input.OwnerID,
		Name:             name,
		Description:      description,
		Category:         input.Category,
		PriceAmountCents: input.PriceAmountCents,
		PriceUnit:        input.PriceUnit,
		Availability:     enums.ItemAvailabilityAvailable,
		IsActive:         true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}

	view := toItemView(item)
	return &view, nil
}

func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemView, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	view := toItemView(item)
	return &view, nil
}

func (s *service) ListItems(ctx context.Context, params ListParams) (*ItemList, error) {
	if params.Category != nil && !params.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category filter")
	}
	if params.Availability != nil && !params.Availability.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid availability filter")
	}

	query := listQuery{
		limit:        pagination.LimitWithBuffer(params.Limit),
		ownerID:      params.OwnerID,
		category:     params.Category,
		availability: params.Availability,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]ItemView, 0, len(rows))
	for i := range rows {
		items = append(items, toItemView(&rows[i]))
	}
	return &ItemList{Items: items, NextCursor: nextCursor}, nil
}

func toItemView(item *models.RentalItem) ItemView {
	view := ItemView{
		ID:               item.ID,
		OwnerID:          item.OwnerID,
		Name:             item.Name,
		Description:      item.Description,
		Category:         item.Category,
		PriceAmountCents: item.PriceAmountCents,
		PriceUnit:        item.PriceUnit,
		Availability:     item.Availability,
		CreatedAt:        item.CreatedAt,
	}
	if item.Availability == enums.ItemAvailabilityUnavailable {
		view.AvailableFrom = item.CurrentEndDate
	}
	return view
}
