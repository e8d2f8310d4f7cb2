package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ringgitlab/duit/internal/model"
)

// handleActiveBudgetWizard is chain step 3.
func (m *Machine) handleActiveBudgetWizard(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowBudgetWizard {
		return "", false
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	state := session.State
	switch state.Stage {
	case model.StageBudgetAskCategory:
		state.BudgetCategory = m.resolveCategory(text, session.CustomCategories)
		state.Stage = model.StageBudgetAskAmount
		return fmt.Sprintf("Budget for %s. How much per month?", state.BudgetCategory), true

	case model.StageBudgetAskAmount, model.StageBudgetReviseAmount:
		amount, ok := parsePositiveNumber(text)
		if !ok {
			return "I couldn't find a valid amount there. How much should the budget be, e.g. 'RM300'?", true
		}
		state.BudgetAmount = amount
		if state.Stage == model.StageBudgetReviseAmount {
			state.Stage = model.StageBudgetConfirm
			return m.budgetConfirmPrompt(state), true
		}
		state.Stage = model.StageBudgetAskMonth
		return "For which month? Name one, or say 'this month'.", true

	case model.StageBudgetAskMonth, model.StageBudgetReviseMonth:
		state.BudgetMonth = parseMonth(text, time.Now().Month())
		if state.Stage == model.StageBudgetReviseMonth {
			state.Stage = model.StageBudgetConfirm
			return m.budgetConfirmPrompt(state), true
		}
		state.Stage = model.StageBudgetAskYear
		return fmt.Sprintf("%s it is. Which year?", state.BudgetMonth), true

	case model.StageBudgetAskYear, model.StageBudgetReviseYear:
		year, ok := parseYear(text)
		if !ok {
			return "I need a year between 2020 and 2100, like '2026'.", true
		}
		state.BudgetYear = year
		state.Stage = model.StageBudgetConfirm
		return m.budgetConfirmPrompt(state), true

	case model.StageBudgetReviseCategory:
		state.BudgetCategory = m.resolveCategory(text, session.CustomCategories)
		state.Stage = model.StageBudgetConfirm
		return m.budgetConfirmPrompt(state), true

	case model.StageBudgetConfirm:
		switch {
		case isYes(text):
			budget := &model.Budget{
				UserID:   session.UserID,
				Category: state.BudgetCategory,
				Amount:   state.BudgetAmount,
				Month:    state.BudgetMonth,
				Year:     state.BudgetYear,
			}
			if err := m.store.SetBudget(ctx, budget); err != nil {
				// Keep the wizard at confirm so the user can retry or cancel.
				slog.Error("Budget save failed", "user", session.UserID, "error", err)
				return pick(storageFailureResponses), true
			}
			session.ClearFlow()
			return fmt.Sprintf("Done! RM%s budget for %s in %s %d. I'll measure your spending against it.",
				budget.Amount.StringFixed(2), budget.Category, budget.Month, budget.Year), true
		case strings.Contains(text, "change"), isNo(text):
			state.Stage = model.StageBudgetRevisePart
			return "Sure — which part should I change: category, amount, month, or year?", true
		default:
			return "Say 'yes' to save this budget, or 'change' to adjust a part of it.", true
		}

	case model.StageBudgetRevisePart:
		switch {
		case strings.Contains(text, "category"):
			state.Stage = model.StageBudgetReviseCategory
			return "What category should it be?", true
		case strings.Contains(text, "amount"):
			state.Stage = model.StageBudgetReviseAmount
			return "What should the amount be?", true
		case strings.Contains(text, "month"):
			state.Stage = model.StageBudgetReviseMonth
			return "Which month?", true
		case strings.Contains(text, "year"):
			state.Stage = model.StageBudgetReviseYear
			return "Which year?", true
		default:
			return "I can change the category, amount, month, or year — which one?", true
		}
	}
	return "", false
}

func (m *Machine) startBudgetWizard(session *SessionContext) string {
	session.StartFlow(model.NewConversationState(model.FlowBudgetWizard, model.StageBudgetAskCategory), true)
	slog.Debug("Budget wizard started", "user", session.UserID)
	return "Let's set a budget. Which category — food, transport, shopping, or something else?"
}

func (m *Machine) budgetConfirmPrompt(state *model.ConversationState) string {
	return fmt.Sprintf("So that's RM%s for %s in %s %d. Save it? (yes to save, 'change' to adjust)",
		state.BudgetAmount.StringFixed(2), state.BudgetCategory, state.BudgetMonth, state.BudgetYear)
}

// resolveCategory keyword-maps free text to a category, defaulting to
// CategoryOther when nothing matches or the user explicitly says other/misc.
func (m *Machine) resolveCategory(text string, custom []string) model.Category {
	if strings.Contains(text, "other") || strings.Contains(text, "misc") {
		return model.CategoryOther
	}
	if cat, ok := model.ParseCategory(text); ok {
		return cat
	}
	return m.categorize(text, custom)
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// parseMonth finds a month name in the text, defaulting to the current month.
func parseMonth(text string, current time.Month) time.Month {
	for _, word := range strings.Fields(text) {
		if month, ok := monthNames[strings.Trim(word, ".,")]; ok {
			return month
		}
	}
	return current
}

// parseYear requires a numeric year within 2020..2100.
func parseYear(text string) (int, bool) {
	for _, word := range strings.Fields(text) {
		year, err := strconv.Atoi(strings.Trim(word, ".,"))
		if err != nil {
			continue
		}
		if year >= 2020 && year <= 2100 {
			return year, true
		}
	}
	return 0, false
}
