package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// SetBudget inserts or updates the budget for (user, category, month, year).
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, amount, month, year)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category, month, year)
		DO UPDATE SET amount = excluded.amount, updated_at = CURRENT_TIMESTAMP
	`, budget.ID, budget.UserID, string(budget.Category), budget.Amount.String(),
		int(budget.Month), budget.Year)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	slog.Debug("Budget saved", "user", budget.UserID, "category", budget.Category,
		"month", budget.Month, "year", budget.Year, "amount", budget.Amount)
	return nil
}

// GetBudget returns the budget for (user, category, month, year), or nil when
// none is set.
func (s *SQLiteStorage) GetBudget(ctx context.Context, userID string, category model.Category, month time.Month, year int) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateMonthYear(int(month), year); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, amount, month, year, created_at, updated_at
		FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?
	`, userID, string(category), int(month), year)

	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return budget, err
}

// GetBudgets returns all budgets a user set for the given month.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID string, month time.Month, year int) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateMonthYear(int(month), year); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, category, amount, month, year, created_at, updated_at
		FROM budgets WHERE user_id = ? AND month = ? AND year = ?
		ORDER BY category
	`, userID, int(month), year)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *budget)
	}
	return budgets, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(row scanner) (*model.Budget, error) {
	var b model.Budget
	var amount, category string
	var month int
	if err := row.Scan(&b.ID, &b.UserID, &category, &amount, &month, &b.Year,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan budget: %w", err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	b.Amount = value
	b.Category = model.Category(category)
	b.Month = time.Month(month)
	return &b, nil
}
