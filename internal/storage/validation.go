package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ringgitlab/duit/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidYear   = errors.New("year out of range")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("amount must not be negative")
	ErrInvalidRecord = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateMonthYear ensures a month/year pair is sensible.
func validateMonthYear(month int, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if year < 2020 || year > 2100 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidRecord)
	}
	if expense.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidRecord)
	}
	if expense.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if expense.Amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, expense.Amount)
	}
	return nil
}

// validateExpenses validates a slice of expenses.
func validateExpenses(expenses []model.Expense) error {
	if expenses == nil {
		return fmt.Errorf("%w: expenses", ErrNilParameter)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: expenses", ErrEmptySlice)
	}
	for i := range expenses {
		if err := validateExpense(&expenses[i]); err != nil {
			return fmt.Errorf("expense at index %d: %w", i, err)
		}
	}
	return nil
}

// validateBudget validates a budget.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if budget.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidRecord)
	}
	if budget.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if budget.Amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, budget.Amount)
	}
	return validateMonthYear(int(budget.Month), budget.Year)
}

// validateGoal validates a goal.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidRecord)
	}
	if goal.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if goal.Months <= 0 {
		return fmt.Errorf("%w: months must be positive", ErrInvalidRecord)
	}
	if goal.Amount.IsNegative() || goal.Amount.IsZero() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, goal.Amount)
	}
	return nil
}
