package enums

import "fmt"

// PriceUnit is the billing period a rental item is priced by.
type PriceUnit string

const (
	PriceUnitDaily   PriceUnit = "daily"
	PriceUnitWeekly  PriceUnit = "weekly"
	PriceUnitMonthly PriceUnit = "monthly"
)

var validPriceUnits = []PriceUnit{
	PriceUnitDaily,
	PriceUnitWeekly,
	PriceUnitMonthly,
}

// String implements fmt.Stringer.
func (p PriceUnit) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceUnit.
func (p PriceUnit) IsValid() bool {
	for _, candidate := range validPriceUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceUnit converts raw input into a PriceUnit.
func ParsePriceUnit(value string) (PriceUnit, error) {
	for _, candidate := range validPriceUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price unit %q", value)
}
