package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/service"
)

// budgetCommands and goalCommands are the explicit wizard-starting phrases of
// chain step 10.
var budgetCommands = []string{"set budget", "set a budget", "create budget", "create a budget", "new budget"}

var goalCommands = []string{"set a goal", "set goal", "create a goal", "create goal", "new goal"}

var addCategoryRe = regexp.MustCompile(`^add (?:a )?category\s+(.+)$`)

// handleExplicitCommands is chain step 10: command phrases start the matching
// wizard, clearing any unrelated pending state first.
func (m *Machine) handleExplicitCommands(_ context.Context, session *SessionContext, text string) (string, bool) {
	for _, phrase := range budgetCommands {
		if strings.Contains(text, phrase) {
			return m.startBudgetWizard(session), true
		}
	}
	for _, phrase := range goalCommands {
		if strings.Contains(text, phrase) {
			return m.startGoalWizard(session, "savings"), true
		}
	}
	if strings.Contains(text, "track expense") || strings.Contains(text, "track my expense") {
		session.ClearFlow()
		return "Easy — just tell me what you spent in plain words, like 'RM10 for lunch' or 'spent RM45 on groceries'.", true
	}
	if match := addCategoryRe.FindStringSubmatch(text); match != nil {
		name := strings.Trim(match[1], " .,!?'\"")
		if session.AddCustomCategory(name) {
			return fmt.Sprintf("Added '%s' as a category. I'll use it when your descriptions mention it.", strings.ToLower(name)), true
		}
		return fmt.Sprintf("'%s' is already one of your categories.", strings.ToLower(name)), true
	}
	return "", false
}

var incomeRe = regexp.MustCompile(`(?:my income is|i earn|set (?:my )?income(?: to)?)\s*(?:rm\s*|\$)?(\d[\d,]*(?:\.\d+)?)`)

// handleReports is chain step 11: named report requests and income-setting
// phrases, handled inline with no conversation state.
func (m *Machine) handleReports(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if match := incomeRe.FindStringSubmatch(text); match != nil {
		amount, ok := parsePositiveNumber(match[1])
		if !ok {
			return "I couldn't read that income amount. Try 'my income is RM3500'.", true
		}
		now := time.Now()
		income := &model.Income{
			UserID: session.UserID,
			Amount: amount,
			Month:  now.Month(),
			Year:   now.Year(),
		}
		if err := m.store.SetIncome(ctx, income); err != nil {
			slog.Error("Income save failed", "user", session.UserID, "error", err)
			return pick(storageFailureResponses), true
		}
		return fmt.Sprintf("Noted — RM%s income for %s %d.", amount.StringFixed(2), now.Month(), now.Year()), true
	}

	mentionsExpenses := strings.Contains(text, "expense") || strings.Contains(text, "spending") ||
		strings.Contains(text, "spent")
	wantsView := strings.Contains(text, "show") || strings.Contains(text, "view") ||
		strings.Contains(text, "list") || strings.Contains(text, "how much")
	if !mentionsExpenses || !wantsView {
		return "", false
	}

	if strings.Contains(text, "today") || strings.Contains(text, "daily") {
		return m.dailyExpenseReport(ctx, session.UserID), true
	}
	resp, err := m.formatter.Format(ctx, "Your expenses this month:\n{expense_list}", session.UserID, model.ExtractedEntity{})
	if err != nil {
		slog.Error("Monthly report failed", "user", session.UserID, "error", err)
		return pick(clarificationResponses), true
	}
	return resp, true
}

func (m *Machine) dailyExpenseReport(ctx context.Context, userID string) string {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	expenses, err := m.store.GetExpenses(ctx, userID, service.ExpenseFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		slog.Error("Daily report failed", "user", userID, "error", err)
		return pick(clarificationResponses)
	}
	if len(expenses) == 0 {
		return "Nothing recorded today yet. Tell me when you spend something!"
	}

	var b strings.Builder
	b.WriteString("Today's expenses:\n")
	total := decimal.Zero
	for _, e := range expenses {
		fmt.Fprintf(&b, "- RM%s %s (%s)\n", e.Amount.StringFixed(2), e.Description, e.Category)
		total = total.Add(e.Amount)
	}
	fmt.Fprintf(&b, "Total: RM%s", total.StringFixed(2))
	return b.String()
}

var budgetQueryRe = regexp.MustCompile(`(?:show|check|view|what's|whats|what is)\s+(?:my\s+)?([a-z ]+?)\s+budget\b|budget\s+for\s+([a-z ]+)`)

// handleBudgetQuery is chain step 13: specific-category budget questions
// answered directly from storage.
func (m *Machine) handleBudgetQuery(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if !strings.Contains(text, "budget") {
		return "", false
	}
	match := budgetQueryRe.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	raw := match[1]
	if raw == "" {
		raw = match[2]
	}
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", "my", "the", "a", "me":
		// No category named; let intent classification answer generally.
		return "", false
	}

	category := m.resolveCategory(raw, session.CustomCategories)
	now := time.Now()
	budget, err := m.store.GetBudget(ctx, session.UserID, category, now.Month(), now.Year())
	if err != nil {
		slog.Error("Budget query failed", "user", session.UserID, "category", category, "error", err)
		return pick(clarificationResponses), true
	}
	if budget == nil {
		return fmt.Sprintf("You haven't set a %s budget for %s %d. Say 'set budget' to create one.",
			category, now.Month(), now.Year()), true
	}

	totals, err := m.store.GetSpendingByCategory(ctx, session.UserID, now.Month(), now.Year())
	if err != nil {
		slog.Error("Spending lookup failed", "user", session.UserID, "error", err)
		return pick(clarificationResponses), true
	}
	spent := totals[category]
	remaining := budget.Amount.Sub(spent)
	if remaining.IsNegative() {
		return fmt.Sprintf("You've spent RM%s of your RM%s %s budget — RM%s over. Maybe ease off this month?",
			spent.StringFixed(2), budget.Amount.StringFixed(2), category, remaining.Neg().StringFixed(2)), true
	}
	return fmt.Sprintf("You've spent RM%s of your RM%s %s budget. RM%s left for %s.",
		spent.StringFixed(2), budget.Amount.StringFixed(2), category, remaining.StringFixed(2), now.Month()), true
}
