package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"food", CategoryFood, true},
		{"  Transport ", CategoryTransport, true},
		{"HOUSING", CategoryHousing, true},
		{"other", CategoryOther, true},
		{"groceries", CategoryOther, false},
		{"", CategoryOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltinCategoriesOrder(t *testing.T) {
	cats := BuiltinCategories()
	assert.Equal(t, CategoryFood, cats[0], "food resolves keyword ties first")
	assert.Equal(t, CategoryOther, cats[len(cats)-1])

	seen := make(map[Category]struct{}, len(cats))
	for _, c := range cats {
		_, dup := seen[c]
		assert.False(t, dup, "duplicate category %s", c)
		seen[c] = struct{}{}
	}
}
