package enums

import "fmt"

// RentalOutcome is the terminal state recorded when a rental is archived.
type RentalOutcome string

const (
	RentalOutcomeCompleted RentalOutcome = "completed"
	RentalOutcomeCancelled RentalOutcome = "cancelled"
)

var validRentalOutcomes = []RentalOutcome{
	RentalOutcomeCompleted,
	RentalOutcomeCancelled,
}

// String implements fmt.Stringer.
func (r RentalOutcome) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RentalOutcome.
func (r RentalOutcome) IsValid() bool {
	for _, candidate := range validRentalOutcomes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRentalOutcome converts raw input into a RentalOutcome.
func ParseRentalOutcome(value string) (RentalOutcome, error) {
	for _, candidate := range validRentalOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental outcome %q", value)
}
