package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// PendingStrike is a strike that failed to record after the item transition
// committed and is waiting for the replay worker to apply it. The row carries
// the already-computed facts so replay never recomputes anything.
type PendingStrike struct {
	ID                    uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID            uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	ItemID                *uuid.UUID           `gorm:"column:item_id;type:uuid"`
	Reason                enums.StrikeReason   `gorm:"column:reason;type:strike_reason;not null"`
	Severity              enums.StrikeSeverity `gorm:"column:severity;type:strike_severity;not null"`
	Description           *string              `gorm:"column:description"`
	AdditionalChargeCents int64                `gorm:"column:additional_charge_cents;not null;default:0"`
	OccurredAt            time.Time            `gorm:"column:occurred_at;not null"`
	Attempts              int                  `gorm:"column:attempts;not null;default:0"`
	LastError             *string              `gorm:"column:last_error"`
	CreatedAt             time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
