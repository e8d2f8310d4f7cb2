// Package service defines the interfaces the conversational core consumes.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// ExpenseFilter defines filtering options for expense queries.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  model.Category
	Limit     int
}

// Storage defines the contract for the persistence collaborator. All calls
// are scoped by the user identifier carried on the records or passed in.
type Storage interface {
	// Expense operations.
	AddExpense(ctx context.Context, expense *model.Expense) error
	// AddExpensesBatch persists all expenses or none of them, assigning each
	// a distinct identifier.
	AddExpensesBatch(ctx context.Context, expenses []model.Expense) ([]string, error)
	UpdateExpenseCategory(ctx context.Context, id string, category model.Category) error
	UpdateExpenseAmount(ctx context.Context, id string, amount decimal.Decimal) error
	GetExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]model.Expense, error)
	GetSpendingByCategory(ctx context.Context, userID string, month time.Month, year int) (map[model.Category]decimal.Decimal, error)

	// Budget operations. SetBudget upserts on (user, category, month, year).
	SetBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, userID string, category model.Category, month time.Month, year int) (*model.Budget, error)
	GetBudgets(ctx context.Context, userID string, month time.Month, year int) ([]model.Budget, error)

	// Goal operations.
	AddGoal(ctx context.Context, goal *model.Goal) error
	GetUserGoals(ctx context.Context, userID string) ([]model.Goal, error)
	AddGoalContribution(ctx context.Context, contribution *model.GoalContribution) error

	// Income operations. SetIncome upserts on (user, month, year).
	SetIncome(ctx context.Context, income *model.Income) error
	GetIncome(ctx context.Context, userID string, month time.Month, year int) (*model.Income, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
