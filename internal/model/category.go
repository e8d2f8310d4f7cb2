// Package model defines the core data structures for the duit application.
package model

import "strings"

// Category is an expense category. The built-in set is closed; user-defined
// custom categories are represented as lower-cased Category values outside it.
type Category string

// Built-in expense categories.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryHousing       Category = "housing"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// BuiltinCategories returns the built-in categories in their canonical order.
// The order is load-bearing: keyword categorization resolves ties by whichever
// category appears earlier in this slice.
func BuiltinCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryUtilities,
		CategoryHousing,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// ParseCategory maps free text to a built-in category, reporting whether the
// text named one exactly.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BuiltinCategories() {
		if c == known {
			return known, true
		}
	}
	return CategoryOther, false
}

func (c Category) String() string {
	return string(c)
}
