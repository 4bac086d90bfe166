package enums

import "fmt"

// StrikeSeverity grades how serious a strike is.
type StrikeSeverity string

const (
	StrikeSeverityMinor    StrikeSeverity = "minor"
	StrikeSeverityModerate StrikeSeverity = "moderate"
	StrikeSeveritySevere   StrikeSeverity = "severe"
)

var validStrikeSeverities = []StrikeSeverity{
	StrikeSeverityMinor,
	StrikeSeverityModerate,
	StrikeSeveritySevere,
}

// String implements fmt.Stringer.
func (s StrikeSeverity) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StrikeSeverity.
func (s StrikeSeverity) IsValid() bool {
	for _, candidate := range validStrikeSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStrikeSeverity converts raw input into a StrikeSeverity.
func ParseStrikeSeverity(value string) (StrikeSeverity, error) {
	for _, candidate := range validStrikeSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid strike severity %q", value)
}
