package rentals

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// RentInput starts a rental for an item.
type RentInput struct {
	ItemID       uuid.UUID
	CustomerID   uuid.UUID
	DurationDays int
	DepositCents int64
	StartDate    time.Time
}

// RentalRecord reports the active rental created by Rent.
type RentalRecord struct {
	ItemID       uuid.UUID              `json:"item_id"`
	CustomerID   uuid.UUID              `json:"customer_id"`
	StartDate    time.Time              `json:"start_date"`
	EndDate      time.Time              `json:"end_date"`
	DepositCents int64                  `json:"deposit_cents"`
	TotalCents   int64                  `json:"total_cents"`
	Availability enums.ItemAvailability `json:"availability"`
}

// ReturnInput closes out an active rental.
type ReturnInput struct {
	ItemID           uuid.UUID
	CustomerID       uuid.UUID
	Condition        enums.ItemCondition
	Comments         *string
	ExtraChargeCents int64
	ReturnedAt       time.Time
}

// ReturnReceipt summarizes the settlement of a returned rental.
type ReturnReceipt struct {
	ItemID             uuid.UUID              `json:"item_id"`
	CustomerID         uuid.UUID              `json:"customer_id"`
	ReturnedAt         time.Time              `json:"returned_at"`
	Condition          enums.ItemCondition    `json:"condition"`
	DaysLate           int                    `json:"days_late"`
	LateFeeCents       int64                  `json:"late_fee_cents"`
	DepositRefundCents int64                  `json:"deposit_refund_cents"`
	TotalChargesCents  int64                  `json:"total_charges_cents"`
	FinalAmountCents   int64                  `json:"final_amount_cents"`
	Standing           enums.CustomerStanding `json:"standing"`
}

// CancelInput force-ends an active rental without settlement.
type CancelInput struct {
	ItemID   uuid.UUID
	Comments *string
}

// CancelResult reports the archived cancellation.
type CancelResult struct {
	ItemID     uuid.UUID           `json:"item_id"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Outcome    enums.RentalOutcome `json:"outcome"`
	CanceledAt time.Time           `json:"canceled_at"`
}

// HistoryEntry is one archived rental.
type HistoryEntry struct {
	ID                 uuid.UUID            `json:"id"`
	ItemID             uuid.UUID            `json:"item_id"`
	CustomerID         uuid.UUID            `json:"customer_id"`
	Outcome            enums.RentalOutcome  `json:"outcome"`
	StartDate          time.Time            `json:"start_date"`
	EndDate            time.Time            `json:"end_date"`
	ReturnedAt         *time.Time           `json:"returned_at,omitempty"`
	DepositCents       int64                `json:"deposit_cents"`
	TotalCents         int64                `json:"total_cents"`
	DaysLate           int                  `json:"days_late"`
	LateFeeCents       int64                `json:"late_fee_cents"`
	DepositRefundCents int64                `json:"deposit_refund_cents"`
	ExtraChargeCents   int64                `json:"extra_charge_cents"`
	ReturnCondition    *enums.ItemCondition `json:"return_condition,omitempty"`
	Comments           *string              `json:"comments,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

// ItemHistory is the per-item rental archive page.
type ItemHistory struct {
	ItemID     uuid.UUID      `json:"item_id"`
	Rentals    []HistoryEntry `json:"rentals"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// ActiveRental is a rental currently in progress, read off the item row.
type ActiveRental struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DepositCents int64     `json:"deposit_cents"`
	TotalCents   int64     `json:"total_cents"`
}

// CustomerRentals combines active and archived rentals for one customer.
type CustomerRentals struct {
	CustomerID uuid.UUID      `json:"customer_id"`
	Active     []ActiveRental `json:"active"`
	Past       []HistoryEntry `json:"past"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
