package enums

import "fmt"

// StrikeReason classifies why a strike was recorded against a customer.
type StrikeReason string

const (
	StrikeReasonLateReturn       StrikeReason = "late_return"
	StrikeReasonDamagedItem      StrikeReason = "damaged_item"
	StrikeReasonPaymentIssue     StrikeReason = "payment_issue"
	StrikeReasonViolationOfTerms StrikeReason = "violation_of_terms"
	StrikeReasonNoShow           StrikeReason = "no_show"
	StrikeReasonOther            StrikeReason = "other"
)

var validStrikeReasons = []StrikeReason{
	StrikeReasonLateReturn,
	StrikeReasonDamagedItem,
	StrikeReasonPaymentIssue,
	StrikeReasonViolationOfTerms,
	StrikeReasonNoShow,
	StrikeReasonOther,
}

// String implements fmt.Stringer.
func (s StrikeReason) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StrikeReason.
func (s StrikeReason) IsValid() bool {
	for _, candidate := range validStrikeReasons {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStrikeReason converts raw input into a StrikeReason.
func ParseStrikeReason(value string) (StrikeReason, error) {
	for _, candidate := range validStrikeReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid strike reason %q", value)
}
