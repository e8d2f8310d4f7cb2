package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/common"
	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/service"
)

// AddExpense persists a single expense, assigning it an ID if unset.
func (s *SQLiteStorage) AddExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.SpentAt.IsZero() {
		expense.SpentAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, amount, description, category, spent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, expense.ID, expense.UserID, expense.Amount.String(), expense.Description,
		string(expense.Category), expense.SpentAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	slog.Debug("Expense saved", "id", expense.ID, "user", expense.UserID,
		"amount", expense.Amount, "category", expense.Category)
	return nil
}

// AddExpensesBatch persists all given expenses inside a single transaction.
// Either every expense is saved or none are.
func (s *SQLiteStorage) AddExpensesBatch(ctx context.Context, expenses []model.Expense) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateExpenses(expenses); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expenses (id, user_id, amount, description, category, spent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ids := make([]string, 0, len(expenses))
	now := time.Now()
	for i := range expenses {
		e := &expenses[i]
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.SpentAt.IsZero() {
			e.SpentAt = now
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.UserID, e.Amount.String(),
			e.Description, string(e.Category), e.SpentAt); err != nil {
			return nil, fmt.Errorf("failed to insert expense %d of %d: %w", i+1, len(expenses), err)
		}
		ids = append(ids, e.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense batch: %w", err)
	}

	slog.Debug("Expense batch saved", "count", len(ids), "user", expenses[0].UserID)
	return ids, nil
}

// UpdateExpenseCategory changes the category of an existing expense.
func (s *SQLiteStorage) UpdateExpenseCategory(ctx context.Context, id string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateString(string(category), "category"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category = ? WHERE id = ?`, string(category), id)
	if err != nil {
		return fmt.Errorf("failed to update expense category: %w", err)
	}
	return checkRowAffected(result, id)
}

// UpdateExpenseAmount changes the amount of an existing expense.
func (s *SQLiteStorage) UpdateExpenseAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ? WHERE id = ?`, amount.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update expense amount: %w", err)
	}
	return checkRowAffected(result, id)
}

// GetExpenses returns a user's expenses matching the filter, newest first.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, userID string, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, amount, description, category, spent_at, created_at
		FROM expenses WHERE user_id = ?`
	args := []any{userID}

	if filter.StartDate != nil {
		query += ` AND spent_at >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND spent_at < ?`
		args = append(args, *filter.EndDate)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY spent_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount, category string
		if err := rows.Scan(&e.ID, &e.UserID, &amount, &e.Description, &category,
			&e.SpentAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		e.Category = model.Category(category)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetSpendingByCategory aggregates a user's spending per category for a month.
func (s *SQLiteStorage) GetSpendingByCategory(ctx context.Context, userID string, month time.Month, year int) (map[model.Category]decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateMonthYear(int(month), year); err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, amount FROM expenses
		WHERE user_id = ? AND spent_at >= ? AND spent_at < ?
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Amounts are stored as decimal strings, so the sum happens here rather
	// than in SQL.
	totals := make(map[model.Category]decimal.Decimal)
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan spending row: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		cat := model.Category(category)
		totals[cat] = totals[cat].Add(value)
	}
	return totals, rows.Err()
}

// checkRowAffected converts a zero-row update into ErrNotFound.
func checkRowAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	return nil
}
