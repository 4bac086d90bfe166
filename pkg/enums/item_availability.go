package enums

import "fmt"

// ItemAvailability tracks whether a rental item can be rented right now.
type ItemAvailability string

const (
	ItemAvailabilityAvailable   ItemAvailability = "available"
	ItemAvailabilityUnavailable ItemAvailability = "unavailable"
)

var validItemAvailabilities = []ItemAvailability{
	ItemAvailabilityAvailable,
	ItemAvailabilityUnavailable,
}

// String implements fmt.Stringer.
func (i ItemAvailability) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemAvailability.
func (i ItemAvailability) IsValid() bool {
	for _, candidate := range validItemAvailabilities {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemAvailability converts raw input into an ItemAvailability.
func ParseItemAvailability(value string) (ItemAvailability, error) {
	for _, candidate := range validItemAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item availability %q", value)
}
