package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// CustomerBehavior aggregates a customer's strike record and derived standing.
// Standing is never written independently of the derivation rule.
type CustomerBehavior struct {
	CustomerID   uuid.UUID              `gorm:"column:customer_id;type:uuid;primaryKey"`
	Standing     enums.CustomerStanding `gorm:"column:standing;type:customer_standing;not null;default:'good'"`
	TotalStrikes int                    `gorm:"column:total_strikes;not null;default:0"`
	Version      int64                  `gorm:"column:version;not null;default:0"`
	Strikes      []Strike               `gorm:"foreignKey:CustomerID;references:CustomerID"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
