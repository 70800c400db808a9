package enums

import "fmt"

// ProductCategory describes the allowed values for the `category` column in products.
type ProductCategory string

const (
	ProductCategoryChair    ProductCategory = "chair"
	ProductCategoryTable    ProductCategory = "table"
	ProductCategoryArmchair ProductCategory = "armchair"
	ProductCategoryOther    ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryChair,
	ProductCategoryTable,
	ProductCategoryArmchair,
	ProductCategoryOther,
}

// IsValid reports whether the value matches the canonical product category enum.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts the raw string to ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

func (c ProductCategory) String() string {
	return string(c)
}
