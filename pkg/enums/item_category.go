package enums

import "fmt"

// ItemCategory groups rental items for browsing.
type ItemCategory string

const (
	ItemCategoryFurniture   ItemCategory = "furniture"
	ItemCategoryElectronics ItemCategory = "electronics"
	ItemCategoryTools       ItemCategory = "tools"
	ItemCategorySports      ItemCategory = "sports"
	ItemCategoryBooks       ItemCategory = "books"
	ItemCategoryVehicles    ItemCategory = "vehicles"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryFurniture,
	ItemCategoryElectronics,
	ItemCategoryTools,
	ItemCategorySports,
	ItemCategoryBooks,
	ItemCategoryVehicles,
	ItemCategoryOther,
}

// String implements fmt.Stringer.
func (i ItemCategory) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemCategory.
func (i ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
