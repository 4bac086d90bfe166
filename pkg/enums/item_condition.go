package enums

import "fmt"

// ItemCondition is the reported condition of an item at return time.
type ItemCondition string

const (
	ItemConditionExcellent ItemCondition = "excellent"
	ItemConditionGood      ItemCondition = "good"
	ItemConditionDamaged   ItemCondition = "damaged"
)

var validItemConditions = []ItemCondition{
	ItemConditionExcellent,
	ItemConditionGood,
	ItemConditionDamaged,
}

// String implements fmt.Stringer.
func (i ItemCondition) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemCondition.
func (i ItemCondition) IsValid() bool {
	for _, candidate := range validItemConditions {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemCondition converts raw input into an ItemCondition.
func ParseItemCondition(value string) (ItemCondition, error) {
	for _, candidate := range validItemConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item condition %q", value)
}
