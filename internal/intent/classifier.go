// Package intent scores utterances against a fixed catalog of tagged
// pattern/response bundles using bag-of-words overlap. It is a lookup-table
// classifier, not a trained model.
package intent

import (
	"log/slog"
	"strings"

	"github.com/ringgitlab/duit/internal/model"
)

// ConfidenceThreshold is the minimum winning score; anything below it falls
// back to the reserved fallback intent.
const ConfidenceThreshold = 0.2

// Classifier ranks catalog intents against input tokens.
type Classifier struct {
	catalog *model.Catalog
}

// NewClassifier creates a classifier over the given catalog.
func NewClassifier(catalog *model.Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// Catalog returns the catalog the classifier was built with.
func (c *Classifier) Catalog() *model.Catalog {
	return c.catalog
}

// Classify returns the best-matching intent tag and its confidence in [0, 1].
// An intent's score is the maximum overlap ratio over its patterns; ties
// resolve to the intent seen first in catalog order. Below the threshold the
// tag is model.FallbackTag.
func (c *Classifier) Classify(text string) (string, float64) {
	words := tokenize(text)
	if len(words) == 0 {
		return model.FallbackTag, 0
	}

	bestTag := model.FallbackTag
	bestScore := 0.0
	for _, in := range c.catalog.Intents {
		score := c.scoreIntent(words, in)
		if score > bestScore {
			bestScore = score
			bestTag = in.Tag
		}
	}

	if bestScore < ConfidenceThreshold {
		slog.Debug("Intent below confidence threshold", "best", bestTag, "score", bestScore)
		return model.FallbackTag, bestScore
	}
	return bestTag, bestScore
}

// scoreIntent takes the best-matching pattern, not the average.
func (c *Classifier) scoreIntent(words map[string]struct{}, in model.Intent) float64 {
	best := 0.0
	for _, pattern := range in.Patterns {
		patternWords := tokenize(pattern)
		if len(patternWords) == 0 {
			continue
		}
		overlap := 0
		for w := range patternWords {
			if _, ok := words[w]; ok {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(patternWords))
		if score > best {
			best = score
		}
	}
	return best
}

// tokenize splits on whitespace into a set of lower-cased words. No stopword
// handling.
func tokenize(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?\"'")
		if w != "" {
			words[w] = struct{}{}
		}
	}
	return words
}
