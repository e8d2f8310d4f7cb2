// Package respond renders intent response templates, resolving live-data
// placeholders against the storage collaborator at format time.
package respond

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/common"
	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/service"
)

// Formatter substitutes placeholders in response templates. Aggregate
// placeholders ({expense_list}, {budget_summary}, ...) query storage lazily,
// only when the template actually contains them.
type Formatter struct {
	store service.Storage
	now   func() time.Time
}

// NewFormatter creates a formatter over the given storage.
func NewFormatter(store service.Storage) *Formatter {
	return &Formatter{store: store, now: time.Now}
}

// Format resolves every placeholder in the template for the given user and
// extracted entities, then applies the RM display pass. A failing aggregate
// query surfaces as an error so the caller can substitute a friendly message.
func (f *Formatter) Format(ctx context.Context, template, userID string, entity model.ExtractedEntity) (string, error) {
	out := template

	if entity.HasAmount {
		out = strings.ReplaceAll(out, "{amount}", entity.Amount.StringFixed(2))
	}
	out = strings.ReplaceAll(out, "{description}", entity.Description)
	out = strings.ReplaceAll(out, "{category}", string(entity.Category))

	now := f.now()
	out = strings.ReplaceAll(out, "{month}", now.Month().String())
	out = strings.ReplaceAll(out, "{year}", fmt.Sprintf("%d", now.Year()))

	var err error
	if out, err = f.resolveAggregate(ctx, out, "{expense_list}", func() (string, error) {
		return f.expenseList(ctx, userID)
	}); err != nil {
		return "", err
	}
	if out, err = f.resolveAggregate(ctx, out, "{spending_breakdown}", func() (string, error) {
		return f.spendingBreakdown(ctx, userID)
	}); err != nil {
		return "", err
	}
	if out, err = f.resolveAggregate(ctx, out, "{top_category}", func() (string, error) {
		return f.topCategory(ctx, userID)
	}); err != nil {
		return "", err
	}
	if out, err = f.resolveAggregate(ctx, out, "{budget_summary}", func() (string, error) {
		return f.budgetSummary(ctx, userID)
	}); err != nil {
		return "", err
	}
	if out, err = f.resolveAggregate(ctx, out, "{goal_summary}", func() (string, error) {
		return f.goalSummary(ctx, userID)
	}); err != nil {
		return "", err
	}
	if strings.Contains(out, "{saving_tips}") {
		out = strings.ReplaceAll(out, "{saving_tips}", TipFor(entity.Category))
	}

	// Ringgit display convention: any literal $ left in a response becomes RM.
	return strings.ReplaceAll(out, "$", "RM"), nil
}

func (f *Formatter) resolveAggregate(_ context.Context, template, placeholder string, resolve func() (string, error)) (string, error) {
	if !strings.Contains(template, placeholder) {
		return template, nil
	}
	value, err := resolve()
	if err != nil {
		slog.Error("Placeholder resolution failed", "placeholder", placeholder, "error", err)
		return "", common.NewUserError("I couldn't pull up your records just now — try again in a moment.", err)
	}
	return strings.ReplaceAll(template, placeholder, value), nil
}

func (f *Formatter) monthRange() (time.Time, time.Time) {
	now := f.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func (f *Formatter) expenseList(ctx context.Context, userID string) (string, error) {
	start, end := f.monthRange()
	expenses, err := f.store.GetExpenses(ctx, userID, service.ExpenseFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "No expenses recorded this month yet.", nil
	}

	var b strings.Builder
	total := decimal.Zero
	for _, e := range expenses {
		fmt.Fprintf(&b, "- RM%s %s (%s)\n", e.Amount.StringFixed(2), e.Description, e.Category)
		total = total.Add(e.Amount)
	}
	fmt.Fprintf(&b, "Total: RM%s", total.StringFixed(2))
	return b.String(), nil
}

func (f *Formatter) spendingBreakdown(ctx context.Context, userID string) (string, error) {
	now := f.now()
	totals, err := f.store.GetSpendingByCategory(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return "", err
	}
	if len(totals) == 0 {
		return "Nothing spent this month yet.", nil
	}

	var b strings.Builder
	for _, cat := range orderedCategories(totals) {
		fmt.Fprintf(&b, "- %s: RM%s\n", cat, totals[cat].StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// orderedCategories returns the keys of totals with built-ins in their
// canonical order followed by custom categories alphabetically, so output
// and tie-breaks are stable.
func orderedCategories(totals map[model.Category]decimal.Decimal) []model.Category {
	out := make([]model.Category, 0, len(totals))
	seen := make(map[model.Category]bool, len(totals))
	for _, cat := range model.BuiltinCategories() {
		if _, ok := totals[cat]; ok {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var custom []model.Category
	for cat := range totals {
		if !seen[cat] {
			custom = append(custom, cat)
		}
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i] < custom[j] })
	return append(out, custom...)
}

func (f *Formatter) topCategory(ctx context.Context, userID string) (string, error) {
	now := f.now()
	totals, err := f.store.GetSpendingByCategory(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return "", err
	}
	if len(totals) == 0 {
		return "nothing yet", nil
	}

	// Strictly-greater comparison over the stable order makes the earlier
	// category win ties.
	var top model.Category
	var topAmount decimal.Decimal
	for _, cat := range orderedCategories(totals) {
		if total := totals[cat]; total.GreaterThan(topAmount) {
			top, topAmount = cat, total
		}
	}
	return fmt.Sprintf("%s (RM%s)", top, topAmount.StringFixed(2)), nil
}

func (f *Formatter) budgetSummary(ctx context.Context, userID string) (string, error) {
	now := f.now()
	budgets, err := f.store.GetBudgets(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return "", err
	}
	if len(budgets) == 0 {
		return "You haven't set any budgets this month. Say 'set budget' to start.", nil
	}

	totals, err := f.store.GetSpendingByCategory(ctx, userID, now.Month(), now.Year())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, budget := range budgets {
		spent := totals[budget.Category]
		remaining := budget.Amount.Sub(spent)
		state := "left"
		if remaining.IsNegative() {
			remaining = remaining.Neg()
			state = "over"
		}
		fmt.Fprintf(&b, "- %s: spent RM%s of RM%s (RM%s %s)\n",
			budget.Category, spent.StringFixed(2), budget.Amount.StringFixed(2),
			remaining.StringFixed(2), state)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (f *Formatter) goalSummary(ctx context.Context, userID string) (string, error) {
	goals, err := f.store.GetUserGoals(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(goals) == 0 {
		return "No goals yet. Say 'set a goal' and I'll walk you through it.", nil
	}

	var b strings.Builder
	for _, g := range goals {
		fmt.Fprintf(&b, "- %s: RM%s over %d months (RM%s/month)\n",
			g.Name, g.Amount.StringFixed(2), g.Months, g.MonthlyContribution.StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
