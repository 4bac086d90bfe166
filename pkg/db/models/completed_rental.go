package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// CompletedRental is the immutable history row written when a rental ends.
// Rows are only ever inserted.
type CompletedRental struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID             uuid.UUID            `gorm:"column:item_id;type:uuid;not null;index"`
	CustomerID         uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	Outcome            enums.RentalOutcome  `gorm:"column:outcome;type:rental_outcome;not null"`
	StartDate          time.Time            `gorm:"column:start_date;not null"`
	EndDate            time.Time            `gorm:"column:end_date;not null"`
	ReturnedAt         *time.Time           `gorm:"column:returned_at"`
	DepositCents       int64                `gorm:"column:deposit_cents;not null;default:0"`
	TotalCents         int64                `gorm:"column:total_cents;not null"`
	DaysLate           int                  `gorm:"column:days_late;not null;default:0"`
	LateFeeCents       int64                `gorm:"column:late_fee_cents;not null;default:0"`
	DepositRefundCents int64                `gorm:"column:deposit_refund_cents;not null;default:0"`
	ExtraChargeCents   int64                `gorm:"column:extra_charge_cents;not null;default:0"`
	ReturnCondition    *enums.ItemCondition `gorm:"column:return_condition;type:item_condition"`
	Comments           *string              `gorm:"column:comments"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
}
