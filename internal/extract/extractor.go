// Package extract turns free-text utterances into structured expense fields
// using a declared, priority-ordered list of typed pattern rules.
package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/common"
	"github.com/ringgitlab/duit/internal/model"
)

// Categorizer assigns a category to an extracted description.
type Categorizer interface {
	Categorize(description string, custom []string) model.Category
}

// Extractor parses utterances into amount/description/category triples.
type Extractor struct {
	categorizer Categorizer
}

// NewExtractor creates an extractor that attaches categories via the given
// categorizer.
func NewExtractor(categorizer Categorizer) *Extractor {
	return &Extractor{categorizer: categorizer}
}

// spendingKeywords gate extraction: text with no digit and none of these is
// rejected outright.
var spendingKeywords = []string{"rm", "spent", "paid", "buy", "bought", "cost"}

var (
	currencyMentionRe = regexp.MustCompile(`(?:rm\s*|\$)\s*\d[\d,]*(?:\.\d+)?`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
	digitRe           = regexp.MustCompile(`\d`)
)

// leading words stripped from extracted descriptions.
var leadingPrepositions = []string{"for", "on", "at", "buying", "getting", "purchasing"}

// Extract parses a single expense from text. It returns an empty entity when
// the text cannot contain an expense. A non-nil error is only returned when
// an amount-shaped match failed to parse and no later rule matched; the error
// never aborts scanning.
func (e *Extractor) Extract(text string, custom []string) (model.ExtractedEntity, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if rejected(text) {
		return model.ExtractedEntity{}, nil
	}
	return e.applyRules(text, singleRules, custom)
}

// ExtractMultiple parses comma/"and"-delimited multi-item utterances. Each
// segment is matched independently against the permissive rule set; segments
// matching nothing are skipped.
func (e *Extractor) ExtractMultiple(text string, custom []string) ([]model.ExtractedEntity, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if rejected(text) {
		return nil, nil
	}

	var entities []model.ExtractedEntity
	var lastErr error
	for _, segment := range segments(text) {
		entity, err := e.applyRules(segment, multiRules, custom)
		if err != nil {
			lastErr = err
			continue
		}
		if entity.IsEmpty() {
			continue
		}
		entities = append(entities, entity)
	}
	return entities, lastErr
}

// applyRules returns the result of the first rule that matches and parses.
func (e *Extractor) applyRules(text string, rules []Rule, custom []string) (model.ExtractedEntity, error) {
	var lastErr error
	for _, rule := range rules {
		match := rule.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		amount, err := parseAmount(match[rule.AmountGroup])
		if err != nil {
			// Keep scanning; a later, looser rule may still bind a valid
			// amount.
			slog.Debug("Amount parse failed, trying next rule", "rule", rule.Name,
				"raw", match[rule.AmountGroup], "error", err)
			lastErr = err
			continue
		}

		entity := model.ExtractedEntity{Amount: amount, HasAmount: true}
		if rule.DescriptionGroup > 0 {
			entity.Description = cleanDescription(match[rule.DescriptionGroup])
		}
		if entity.Description != "" {
			entity.Category = e.categorizer.Categorize(entity.Description, custom)
		}

		slog.Debug("Extraction matched", "rule", rule.Name, "amount", entity.Amount,
			"description", entity.Description, "category", entity.Category)
		return entity, nil
	}
	return model.ExtractedEntity{}, lastErr
}

// rejected applies the cheap pre-checks: length, alphabetic content, and the
// currency-or-digit gate.
func rejected(text string) bool {
	if len(text) <= 2 {
		return true
	}
	if !strings.ContainsFunc(text, unicode.IsLetter) {
		return true
	}
	if digitRe.MatchString(text) {
		return false
	}
	for _, kw := range spendingKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// segments splits text by commas, then re-splits any comma segment holding
// more than one currency mention by the conjunction "and".
func segments(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(currencyMentionRe.FindAllString(part, -1)) > 1 {
			for _, sub := range strings.Split(part, " and ") {
				if sub = strings.TrimSpace(sub); sub != "" {
					out = append(out, sub)
				}
			}
			continue
		}
		out = append(out, part)
	}
	return out
}

// parseAmount strips currency markers and thousands separators and parses a
// non-negative decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", "RM", "", "rm", "", ",", "", " ", "").Replace(raw)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// cleanDescription strips residual currency mentions and leading
// prepositions, then collapses whitespace.
func cleanDescription(raw string) string {
	desc := currencyMentionRe.ReplaceAllString(raw, " ")
	desc = whitespaceRe.ReplaceAllString(desc, " ")
	desc = strings.Trim(desc, " .,!?")

	for changed := true; changed; {
		changed = false
		for _, prep := range leadingPrepositions {
			if strings.HasPrefix(desc, prep+" ") {
				desc = strings.TrimSpace(strings.TrimPrefix(desc, prep+" "))
				changed = true
			}
		}
	}
	return desc
}
