package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ringgitlab/duit/internal/common"
	"github.com/ringgitlab/duit/internal/model"
)

// LoadCatalog reads the intent catalog from a JSON file. When the file does
// not exist, a default catalog is synthesized and written back to the path so
// it can be edited.
func LoadCatalog(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Intent catalog missing, writing default", "path", path)
		catalog := DefaultCatalog()
		if saveErr := SaveCatalog(path, catalog); saveErr != nil {
			return nil, saveErr
		}
		return catalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read intent catalog: %w", err)
	}

	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse intent catalog: %w", err)
	}
	if len(catalog.Intents) == 0 {
		return nil, common.ErrEmptyCatalog
	}
	return &catalog, nil
}

// SaveCatalog writes the catalog as indented JSON, creating parent
// directories as needed.
func SaveCatalog(path string, catalog *model.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode intent catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write intent catalog: %w", err)
	}
	return nil
}

// DefaultCatalog synthesizes the built-in intents used when no catalog file
// exists.
func DefaultCatalog() *model.Catalog {
	return &model.Catalog{Intents: []model.Intent{
		{
			Tag:      "greeting",
			Patterns: []string{"hi", "hello", "hey", "good morning", "good evening", "selamat pagi"},
			Responses: model.ResponseSet{Flat: []string{
				"Hi there! Tell me what you spent today, like 'RM10 for lunch'.",
				"Hello! I'm here to help you track your spending.",
				"Hey! Ready to log some expenses?",
			}},
		},
		{
			Tag:      "expense_add",
			Patterns: []string{"i spent money", "add expense", "record spending", "log expense", "i paid for something"},
			Responses: model.ResponseSet{Flat: []string{
				"Sure — tell me the amount and what it was for, like 'RM15 for nasi lemak'.",
			}},
		},
		{
			Tag:      "expense_summary",
			Patterns: []string{"how much did i spend", "show my spending", "spending summary", "where did my money go"},
			Responses: model.ResponseSet{Flat: []string{
				"Here's your spending this month:\n{spending_breakdown}",
				"Your biggest category this month is {top_category}.\n{spending_breakdown}",
			}},
		},
		{
			Tag:      "budget_status",
			Patterns: []string{"how is my budget", "budget status", "am i over budget"},
			Responses: model.ResponseSet{Flat: []string{
				"Here's where your budgets stand:\n{budget_summary}",
			}},
		},
		{
			Tag:      "goal_status",
			Patterns: []string{"how are my goals", "goal progress", "show my goals"},
			Responses: model.ResponseSet{Flat: []string{
				"Here's your goal progress:\n{goal_summary}",
			}},
		},
		{
			Tag:      "saving_tips",
			Patterns: []string{"how can i save money", "saving tips", "help me save", "tips to spend less"},
			Responses: model.ResponseSet{Grouped: map[string][]string{
				"general": {
					"Small swaps add up — making kopi at home instead of buying can save $100+ a month.",
					"Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings.",
				},
				"food": {
					"Your top tip: {saving_tips}",
				},
			}},
		},
		{
			Tag:      "thanks",
			Patterns: []string{"thanks", "thank you", "terima kasih"},
			Responses: model.ResponseSet{Flat: []string{
				"You're welcome!",
				"Anytime! Keep tracking.",
			}},
		},
		{
			Tag:      "goodbye",
			Patterns: []string{"bye", "goodbye", "see you", "good night"},
			Responses: model.ResponseSet{Flat: []string{
				"Bye! I'll be here when you spend next.",
				"See you! Your records are safe with me.",
			}},
		},
		{
			Tag:      model.FallbackTag,
			Patterns: []string{},
			Responses: model.ResponseSet{Flat: []string{
				"I'm not sure I follow. You can log an expense like 'RM10 for lunch', or say 'set budget' or 'set a goal'.",
				"Hmm, I didn't catch that. Try telling me what you spent, e.g. 'RM25 for petrol'.",
			}},
		},
	}}
}
