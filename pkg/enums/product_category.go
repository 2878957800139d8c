package enums

import "fmt"

// ProductCategory labels a catalog entry with its sport.
type ProductCategory string

const (
	ProductCategoryFootball   ProductCategory = "football"
	ProductCategoryBasketball ProductCategory = "basketball"
	ProductCategoryTennis     ProductCategory = "tennis"
	ProductCategorySoccer     ProductCategory = "soccer"
	ProductCategoryBaseball   ProductCategory = "baseball"
	ProductCategoryGolf       ProductCategory = "golf"
	ProductCategoryFitness    ProductCategory = "fitness"
	ProductCategoryRunning    ProductCategory = "running"
	ProductCategorySwimming   ProductCategory = "swimming"
	ProductCategoryCycling    ProductCategory = "cycling"
	ProductCategoryOther      ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryFootball,
	ProductCategoryBasketball,
	ProductCategoryTennis,
	ProductCategorySoccer,
	ProductCategoryBaseball,
	ProductCategoryGolf,
	ProductCategoryFitness,
	ProductCategoryRunning,
	ProductCategorySwimming,
	ProductCategoryCycling,
	ProductCategoryOther,
}

// ProductCategories returns the known categories in display order.
func ProductCategories() []ProductCategory {
	return append([]ProductCategory(nil), validProductCategories...)
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
