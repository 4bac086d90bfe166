package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
)

// RefundPolicy controls what share of the deposit comes back per condition.
// Damaged returns always forfeit the whole deposit.
type RefundPolicy struct {
	ExcellentPct int
	GoodPct      int
}

// DefaultRefundPolicy mirrors the platform defaults (full refund for
// excellent, 90% for good).
var DefaultRefundPolicy = RefundPolicy{ExcellentPct: 100, GoodPct: 90}

// LateFeePolicy controls the per-day penalty as a percentage of the item's
// nominal price amount.
type LateFeePolicy struct {
	PctPerDay int
}

// DefaultLateFeePolicy charges 10% of the nominal rate per day late.
var DefaultLateFeePolicy = LateFeePolicy{PctPerDay: 10}

// TotalAmountCents computes the rental charge for a duration in days.
// Weekly and monthly rates bill in whole periods, rounded up.
func TotalAmountCents(priceCents int64, unit enums.PriceUnit, durationDays int) (int64, error) {
	if priceCents <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if durationDays < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "rental duration must be at least one day")
	}

	switch unit {
	case enums.PriceUnitDaily:
		return int64(durationDays) * priceCents, nil
	case enums.PriceUnitWeekly:
		weeks := int64(math.Ceil(float64(durationDays) / 7))
		return weeks * priceCents, nil
	case enums.PriceUnitMonthly:
		months := int64(math.Ceil(float64(durationDays) / 30))
		return months * priceCents, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown price unit")
	}
}

// DaysLate returns the whole days between the due date and the return moment,
// rounded up. Returns on or before the due date yield zero.
func DaysLate(endDate, returnedAt time.Time) int {
	if !returnedAt.After(endDate) {
		return 0
	}
	return int(math.Ceil(returnedAt.Sub(endDate).Hours() / 24))
}

// LateFee computes the penalty for a late return. The fee is daysLate times
// PctPerDay percent of the item's nominal price amount, regardless of the
// item's billing unit, rounded to whole cents.
func LateFee(endDate, returnedAt time.Time, nominalRateCents int64, policy LateFeePolicy) (int64, int) {
	daysLate := DaysLate(endDate, returnedAt)
	if daysLate == 0 {
		return 0, 0
	}

	fee := decimal.NewFromInt(nominalRateCents).
		Mul(decimal.NewFromInt(int64(policy.PctPerDay))).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(daysLate))).
		Round(0)
	return fee.IntPart(), daysLate
}

// DepositRefund applies the condition-based refund rule to the deposit.
func DepositRefund(depositCents int64, condition enums.ItemCondition, policy RefundPolicy) int64 {
	if depositCents <= 0 {
		return 0
	}

	var pct int64
	switch condition {
	case enums.ItemConditionDamaged:
		return 0
	case enums.ItemConditionGood:
		pct = int64(policy.GoodPct)
	case enums.ItemConditionExcellent:
		pct = int64(policy.ExcellentPct)
	default:
		pct = 100
	}

	refund := decimal.NewFromInt(depositCents).
		Mul(decimal.NewFromInt(pct)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return refund.IntPart()
}

// SeverityForDaysLate grades a late return: more than a week is severe, more
// than three days moderate, anything else minor.
func SeverityForDaysLate(daysLate int) enums.StrikeSeverity {
	switch {
	case daysLate > 7:
		return enums.StrikeSeveritySevere
	case daysLate > 3:
		return enums.StrikeSeverityModerate
	default:
		return enums.StrikeSeverityMinor
	}
}
