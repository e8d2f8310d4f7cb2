package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantTag string
	}{
		{"exact greeting", "hello", "greeting"},
		{"greeting with punctuation", "Hello!", "greeting"},
		{"spending summary", "how much did i spend", "expense_summary"},
		{"budget status", "am i over budget", "budget_status"},
		{"saving tips", "how can i save money", "saving_tips"},
		{"thanks", "thank you", "thanks"},
		{"goodbye", "bye", "goodbye"},
		{"no overlap falls back", "purple monkey dishwasher", model.FallbackTag},
		{"empty falls back", "", model.FallbackTag},
		{"whitespace falls back", "   ", model.FallbackTag},
	}

	classifier := NewClassifier(DefaultCatalog())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, confidence := classifier.Classify(tt.input)
			assert.Equal(t, tt.wantTag, tag)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestClassifyAlwaysReturnsCatalogTag(t *testing.T) {
	classifier := NewClassifier(DefaultCatalog())
	known := make(map[string]struct{})
	for _, tag := range classifier.Catalog().Tags() {
		known[tag] = struct{}{}
	}
	known[model.FallbackTag] = struct{}{}

	inputs := []string{
		"hello there", "spent too much lagi", "budget please", "goals?",
		"random words entirely", "!!!", "terima kasih banyak",
	}
	for _, input := range inputs {
		tag, _ := classifier.Classify(input)
		_, ok := known[tag]
		assert.True(t, ok, "tag %q for input %q not in catalog", tag, input)
	}
}

func TestClassifyBelowThresholdFallsBack(t *testing.T) {
	catalog := &model.Catalog{Intents: []model.Intent{
		{Tag: "verbose", Patterns: []string{"one two three four five six"}},
	}}
	classifier := NewClassifier(catalog)

	// One word of six overlaps: score 1/6 < 0.2, so the fallback wins even
	// though "verbose" scored highest.
	tag, confidence := classifier.Classify("three unrelated things here")
	assert.Equal(t, model.FallbackTag, tag)
	assert.InDelta(t, 1.0/6.0, confidence, 1e-9)
}

func TestClassifyTieResolvesToCatalogOrder(t *testing.T) {
	catalog := &model.Catalog{Intents: []model.Intent{
		{Tag: "first", Patterns: []string{"hello world"}},
		{Tag: "second", Patterns: []string{"hello world"}},
	}}
	classifier := NewClassifier(catalog)

	tag, confidence := classifier.Classify("hello world")
	assert.Equal(t, "first", tag)
	assert.Equal(t, 1.0, confidence)
}

func TestScoreIntentTakesBestPattern(t *testing.T) {
	classifier := NewClassifier(&model.Catalog{})
	in := model.Intent{Patterns: []string{
		"completely different phrase",
		"track my spending",
	}}

	score := classifier.scoreIntent(tokenize("track my spending please"), in)
	assert.Equal(t, 1.0, score)
}

func TestTokenize(t *testing.T) {
	words := tokenize("Hello, WORLD! it's 'fine'")
	require.Len(t, words, 4)
	for _, w := range []string{"hello", "world", "it's", "fine"} {
		_, ok := words[w]
		assert.True(t, ok, "missing token %q", w)
	}
}
