package extract

import "regexp"

// Rule declares one extraction pattern and which capture group binds to
// which field. Rules are evaluated in slice order and the first match wins,
// so more specific trigger-word patterns must come before the generic
// amount-then-description fallbacks.
type Rule struct {
	re               *regexp.Regexp
	Name             string
	AmountGroup      int
	DescriptionGroup int
}

const amountPattern = `(\d[\d,]*(?:\.\d+)?)`

// singleRules are the patterns for single-expense utterances, in precedence
// order.
var singleRules = []Rule{
	{
		Name:             "verb-description-amount",
		re:               regexp.MustCompile(`(?:bought|buy|purchased|got)\s+(.+?)\s+(?:for|at)\s+(?:rm\s*|\$)?` + amountPattern + `\b`),
		DescriptionGroup: 1,
		AmountGroup:      2,
	},
	{
		Name:             "spent-amount-description",
		re:               regexp.MustCompile(`(?:spent|paid)\s+(?:rm\s*|\$)?` + amountPattern + `\s+(?:for|on|at)\s+(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:             "currency-amount-description",
		re:               regexp.MustCompile(`(?:rm\s*|\$)` + amountPattern + `\s+(?:for|on|at)\s+(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:             "currency-amount-bare-description",
		re:               regexp.MustCompile(`(?:rm\s*|\$)` + amountPattern + `\s+(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:             "description-currency-amount",
		re:               regexp.MustCompile(`(.+?)\s+(?:rm\s*|\$)` + amountPattern + `\s*$`),
		DescriptionGroup: 1,
		AmountGroup:      2,
	},
	{
		Name:             "bare-amount-description",
		re:               regexp.MustCompile(`\b` + amountPattern + `\s+(?:for|on)\s+(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:        "currency-amount-only",
		re:          regexp.MustCompile(`(?:rm\s*|\$)` + amountPattern + `\b`),
		AmountGroup: 1,
	},
}

// multiRules are the more permissive patterns applied per segment of a
// multi-expense utterance, in precedence order.
var multiRules = []Rule{
	{
		Name:             "segment-currency-amount-description",
		re:               regexp.MustCompile(`(?:rm\s*|\$)` + amountPattern + `\s*(?:for|on|at)?\s*(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:             "segment-description-currency-amount",
		re:               regexp.MustCompile(`(.+?)\s+(?:rm\s*|\$)` + amountPattern + `\s*$`),
		DescriptionGroup: 1,
		AmountGroup:      2,
	},
	{
		Name:             "segment-bare-amount-description",
		re:               regexp.MustCompile(`\b` + amountPattern + `\s+(?:for|on)\s+(.+)`),
		AmountGroup:      1,
		DescriptionGroup: 2,
	},
	{
		Name:        "segment-currency-amount-only",
		re:          regexp.MustCompile(`(?:rm\s*|\$)` + amountPattern + `\b`),
		AmountGroup: 1,
	},
}
