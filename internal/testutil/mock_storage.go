package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/service"
)

// ErrInjected is the error returned by scripted mock failures.
var ErrInjected = errors.New("injected storage failure")

// MockStorage is an in-memory service.Storage with scriptable failures.
// Zero value is usable.
type MockStorage struct {
	Expenses []model.Expense
	Budgets  []model.Budget
	Goals    []model.Goal
	Incomes  []model.Income

	// FailAddExpense makes AddExpense fail.
	FailAddExpense bool
	// FailBatchAt makes AddExpensesBatch fail while persisting the 1-based
	// Nth item, after earlier items were tentatively added; the batch
	// contract requires none of them to remain visible.
	FailBatchAt int
	// FailSetBudget / FailAddGoal / FailUpdates script the remaining writes.
	FailSetBudget bool
	FailAddGoal   bool
	FailUpdates   bool
	// FailReads makes every query method fail.
	FailReads bool
}

var _ service.Storage = (*MockStorage)(nil)

// AddExpense appends the expense, assigning an ID.
func (m *MockStorage) AddExpense(_ context.Context, expense *model.Expense) error {
	if m.FailAddExpense {
		return ErrInjected
	}
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.SpentAt.IsZero() {
		expense.SpentAt = time.Now()
	}
	m.Expenses = append(m.Expenses, *expense)
	return nil
}

// AddExpensesBatch persists all or nothing, honoring FailBatchAt.
func (m *MockStorage) AddExpensesBatch(_ context.Context, expenses []model.Expense) ([]string, error) {
	snapshot := len(m.Expenses)
	ids := make([]string, 0, len(expenses))
	for i := range expenses {
		if m.FailBatchAt > 0 && i+1 == m.FailBatchAt {
			m.Expenses = m.Expenses[:snapshot] // roll back
			return nil, fmt.Errorf("item %d: %w", i+1, ErrInjected)
		}
		e := expenses[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.SpentAt.IsZero() {
			e.SpentAt = time.Now()
		}
		m.Expenses = append(m.Expenses, e)
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// UpdateExpenseCategory updates a stored expense's category.
func (m *MockStorage) UpdateExpenseCategory(_ context.Context, id string, category model.Category) error {
	if m.FailUpdates {
		return ErrInjected
	}
	for i := range m.Expenses {
		if m.Expenses[i].ID == id {
			m.Expenses[i].Category = category
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", id)
}

// UpdateExpenseAmount updates a stored expense's amount.
func (m *MockStorage) UpdateExpenseAmount(_ context.Context, id string, amount decimal.Decimal) error {
	if m.FailUpdates {
		return ErrInjected
	}
	for i := range m.Expenses {
		if m.Expenses[i].ID == id {
			m.Expenses[i].Amount = amount
			return nil
		}
	}
	return fmt.Errorf("expense %s not found", id)
}

// GetExpenses filters the in-memory expenses.
func (m *MockStorage) GetExpenses(_ context.Context, userID string, filter service.ExpenseFilter) ([]model.Expense, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	var out []model.Expense
	for _, e := range m.Expenses {
		if e.UserID != userID {
			continue
		}
		if filter.StartDate != nil && e.SpentAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !e.SpentAt.Before(*filter.EndDate) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// GetSpendingByCategory aggregates the in-memory expenses for a month.
func (m *MockStorage) GetSpendingByCategory(_ context.Context, userID string, month time.Month, year int) (map[model.Category]decimal.Decimal, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	totals := make(map[model.Category]decimal.Decimal)
	for _, e := range m.Expenses {
		if e.UserID != userID || e.SpentAt.Month() != month || e.SpentAt.Year() != year {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals, nil
}

// SetBudget upserts on (user, category, month, year).
func (m *MockStorage) SetBudget(_ context.Context, budget *model.Budget) error {
	if m.FailSetBudget {
		return ErrInjected
	}
	for i := range m.Budgets {
		b := &m.Budgets[i]
		if b.UserID == budget.UserID && b.Category == budget.Category &&
			b.Month == budget.Month && b.Year == budget.Year {
			b.Amount = budget.Amount
			return nil
		}
	}
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

// GetBudget looks up a budget, returning nil when unset.
func (m *MockStorage) GetBudget(_ context.Context, userID string, category model.Category, month time.Month, year int) (*model.Budget, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	for i := range m.Budgets {
		b := m.Budgets[i]
		if b.UserID == userID && b.Category == category && b.Month == month && b.Year == year {
			return &b, nil
		}
	}
	return nil, nil
}

// GetBudgets lists a user's budgets for a month.
func (m *MockStorage) GetBudgets(_ context.Context, userID string, month time.Month, year int) ([]model.Budget, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	var out []model.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

// AddGoal appends the goal, assigning an ID.
func (m *MockStorage) AddGoal(_ context.Context, goal *model.Goal) error {
	if m.FailAddGoal {
		return ErrInjected
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	m.Goals = append(m.Goals, *goal)
	return nil
}

// GetUserGoals lists a user's goals.
func (m *MockStorage) GetUserGoals(_ context.Context, userID string) ([]model.Goal, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	var out []model.Goal
	for _, g := range m.Goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

// AddGoalContribution is accepted and discarded; tests don't read it back.
func (m *MockStorage) AddGoalContribution(_ context.Context, _ *model.GoalContribution) error {
	return nil
}

// SetIncome upserts on (user, month, year).
func (m *MockStorage) SetIncome(_ context.Context, income *model.Income) error {
	for i := range m.Incomes {
		in := &m.Incomes[i]
		if in.UserID == income.UserID && in.Month == income.Month && in.Year == income.Year {
			in.Amount = income.Amount
			return nil
		}
	}
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	m.Incomes = append(m.Incomes, *income)
	return nil
}

// GetIncome looks up an income record, returning nil when unset.
func (m *MockStorage) GetIncome(_ context.Context, userID string, month time.Month, year int) (*model.Income, error) {
	if m.FailReads {
		return nil, ErrInjected
	}
	for i := range m.Incomes {
		in := m.Incomes[i]
		if in.UserID == userID && in.Month == month && in.Year == year {
			return &in, nil
		}
	}
	return nil, nil
}

// Migrate is a no-op for the mock.
func (m *MockStorage) Migrate(_ context.Context) error { return nil }

// Close is a no-op for the mock.
func (m *MockStorage) Close() error { return nil }
