package enums

import "fmt"

// CustomerStanding is the derived behavior status of a customer.
type CustomerStanding string

const (
	CustomerStandingGood      CustomerStanding = "good"
	CustomerStandingWarning   CustomerStanding = "warning"
	CustomerStandingSuspended CustomerStanding = "suspended"
	CustomerStandingBanned    CustomerStanding = "banned"
)

var validCustomerStandings = []CustomerStanding{
	CustomerStandingGood,
	CustomerStandingWarning,
	CustomerStandingSuspended,
	CustomerStandingBanned,
}

// String implements fmt.Stringer.
func (c CustomerStanding) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerStanding.
func (c CustomerStanding) IsValid() bool {
	for _, candidate := range validCustomerStandings {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerStanding converts raw input into a CustomerStanding.
func ParseCustomerStanding(value string) (CustomerStanding, error) {
	for _, candidate := range validCustomerStandings {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer standing %q", value)
}
