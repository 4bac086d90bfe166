package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// CreateItemInput carries the fields for a new listing.
type CreateItemInput struct {
	OwnerID          uuid.UUID
	Name             string
	Description      string
	Category         enums.ItemCategory
	PriceAmountCents int64
	PriceUnit        enums.PriceUnit
}

// ItemView is the public read shape of a listing. The active renter is never
// exposed here; only the date the item frees up.
type ItemView struct {
	ID               uuid.UUID              `json:"id"`
	OwnerID          uuid.UUID              `json:"owner_id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Category         enums.ItemCategory     `json:"category"`
	PriceAmountCents int64                  `json:"price_amount_cents"`
	PriceUnit        enums.PriceUnit        `json:"price_unit"`
	Availability     enums.ItemAvailability `json:"availability"`
	AvailableFrom    *time.Time             `json:"available_from,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// ListParams filters and pages the catalog listing.
type ListParams struct {
	Limit        int
	Cursor       string
	OwnerID      *uuid.UUID
	Category     *enums.ItemCategory
	Availability *enums.ItemAvailability
}

// ItemList wraps one catalog page plus the next cursor.
type ItemList struct {
	Items      []ItemView `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
