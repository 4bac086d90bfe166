package behavior

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// AddStrikeInput carries the already-computed facts for one strike.
type AddStrikeInput struct {
	CustomerID            uuid.UUID
	ItemID                *uuid.UUID
	Reason                enums.StrikeReason
	Severity              enums.StrikeSeverity
	Description           *string
	AdditionalChargeCents int64
	OccurredAt            time.Time
}

// ResolveStrikeInput identifies the strike to resolve and the operator notes.
type ResolveStrikeInput struct {
	CustomerID      uuid.UUID
	StrikeID        uuid.UUID
	ResolutionNotes *string
}

// StrikeResult reports the ledger state after a strike mutation.
type StrikeResult struct {
	StrikeID     uuid.UUID              `json:"strike_id"`
	Standing     enums.CustomerStanding `json:"standing"`
	TotalStrikes int                    `json:"total_strikes"`
}

// StrikeView is the read shape of one strike.
type StrikeView struct {
	ID                    uuid.UUID            `json:"id"`
	ItemID                *uuid.UUID           `json:"item_id,omitempty"`
	Reason                enums.StrikeReason   `json:"reason"`
	Severity              enums.StrikeSeverity `json:"severity"`
	Description           *string              `json:"description,omitempty"`
	AdditionalChargeCents int64                `json:"additional_charge_cents"`
	OccurredAt            time.Time            `json:"occurred_at"`
	Resolved              bool                 `json:"resolved"`
	ResolvedAt            *time.Time           `json:"resolved_at,omitempty"`
	ResolutionNotes       *string              `json:"resolution_notes,omitempty"`
}

// BehaviorView is the read shape of a customer's ledger. Customers without a
// row report good standing and zero strikes.
type BehaviorView struct {
	CustomerID   uuid.UUID              `json:"customer_id"`
	Standing     enums.CustomerStanding `json:"standing"`
	TotalStrikes int                    `json:"total_strikes"`
	Strikes      []StrikeView           `json:"strikes"`
}

// FlaggedCustomer is one row of the flagged listing.
type FlaggedCustomer struct {
	CustomerID   uuid.UUID              `json:"customer_id"`
	Standing     enums.CustomerStanding `json:"standing"`
	TotalStrikes int                    `json:"total_strikes"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// FlaggedList wraps the paginated flagged customers plus the next cursor.
type FlaggedList struct {
	Customers  []FlaggedCustomer `json:"customers"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
