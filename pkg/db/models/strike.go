package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// Strike is one recorded infraction against a customer. After insert only the
// resolution fields mutate.
type Strike struct {
	ID                    uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID            uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	ItemID                *uuid.UUID           `gorm:"column:item_id;type:uuid"`
	Reason                enums.StrikeReason   `gorm:"column:reason;type:strike_reason;not null"`
	Severity              enums.StrikeSeverity `gorm:"column:severity;type:strike_severity;not null"`
	Description           *string              `gorm:"column:description"`
	AdditionalChargeCents int64                `gorm:"column:additional_charge_cents;not null;default:0"`
	OccurredAt            time.Time            `gorm:"column:occurred_at;not null"`
	Resolved              bool                 `gorm:"column:resolved;not null;default:false"`
	ResolvedAt            *time.Time           `gorm:"column:resolved_at"`
	ResolutionNotes       *string              `gorm:"column:resolution_notes"`
	CreatedAt             time.Time            `gorm:"column:created_at;autoCreateTime"`
}
