package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// License gates which users may list and rent out items. Lifecycle
// (purchase, approval, renewal) is owned by an external system; this service
// only reads it for entitlement checks.
type License struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID           `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Plan      string              `gorm:"column:plan;not null"`
	Status    enums.LicenseStatus `gorm:"column:status;type:license_status;not null;default:'active'"`
	ItemLimit int                 `gorm:"column:item_limit;not null;default:0"`
	ExpiresAt *time.Time          `gorm:"column:expires_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
