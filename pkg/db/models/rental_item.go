package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/pkg/enums"
)

// RentalItem is the canonical listing plus its embedded active rental.
//
// When Availability is unavailable the Current* columns describe the rental
// in progress; when available they are all NULL. Version guards every state
// transition with compare-and-swap updates.
type RentalItem struct {
	ID                  uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID             uuid.UUID              `gorm:"column:owner_id;type:uuid;not null"`
	Name                string                 `gorm:"column:name;not null"`
	Description         string                 `gorm:"column:description;not null"`
	Category            enums.ItemCategory     `gorm:"column:category;type:item_category;not null"`
	PriceAmountCents    int64                  `gorm:"column:price_amount_cents;not null"`
	PriceUnit           enums.PriceUnit        `gorm:"column:price_unit;type:price_unit;not null"`
	Availability        enums.ItemAvailability `gorm:"column:availability;type:item_availability;not null;default:'available'"`
	IsActive            bool                   `gorm:"column:is_active;not null;default:true"`
	Version             int64                  `gorm:"column:version;not null;default:0"`
	CurrentCustomerID   *uuid.UUID             `gorm:"column:current_customer_id;type:uuid"`
	CurrentStartDate    *time.Time             `gorm:"column:current_start_date"`
	CurrentEndDate      *time.Time             `gorm:"column:current_end_date"`
	CurrentDepositCents *int64                 `gorm:"column:current_deposit_cents"`
	CurrentTotalCents   *int64                 `gorm:"column:current_total_cents"`
	CreatedAt           time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
