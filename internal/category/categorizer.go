// Package category maps free-text expense descriptions to categories using
// ordered keyword tables. First match wins; there is no weighting or scoring,
// and the table order decides ties.
package category

import (
	"strings"

	"github.com/ringgitlab/duit/internal/model"
)

// Categorizer classifies descriptions against the built-in keyword tables.
// It is stateless and safe for concurrent use; per-session custom categories
// are passed in by the caller.
type Categorizer struct {
	tables []keywordTable
}

// NewCategorizer creates a categorizer with the default keyword tables.
func NewCategorizer() *Categorizer {
	return &Categorizer{tables: defaultKeywordTables()}
}

// Categorize returns the first category whose keyword list has a substring
// match in the description, then falls back to the session's custom
// categories, then to CategoryOther. It always returns a category.
func (c *Categorizer) Categorize(description string, custom []string) model.Category {
	desc := strings.ToLower(description)

	for _, table := range c.tables {
		for _, keyword := range table.keywords {
			if strings.Contains(desc, keyword) {
				return table.category
			}
		}
	}

	for _, name := range custom {
		if name != "" && strings.Contains(desc, strings.ToLower(name)) {
			return model.Category(strings.ToLower(name))
		}
	}

	return model.CategoryOther
}
