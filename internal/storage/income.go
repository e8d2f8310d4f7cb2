package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// SetIncome inserts or updates a user's income for (month, year).
func (s *SQLiteStorage) SetIncome(ctx context.Context, income *model.Income) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if income == nil {
		return fmt.Errorf("%w: income", ErrNilParameter)
	}
	if err := validateString(income.UserID, "userID"); err != nil {
		return err
	}
	if income.Amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, income.Amount)
	}
	if err := validateMonthYear(int(income.Month), income.Year); err != nil {
		return err
	}

	if income.ID == "" {
		income.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incomes (id, user_id, amount, month, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, month, year) DO UPDATE SET amount = excluded.amount
	`, income.ID, income.UserID, income.Amount.String(), int(income.Month), income.Year)
	if err != nil {
		return fmt.Errorf("failed to upsert income: %w", err)
	}
	return nil
}

// GetIncome returns the user's income for (month, year), or nil when unset.
func (s *SQLiteStorage) GetIncome(ctx context.Context, userID string, month time.Month, year int) (*model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateMonthYear(int(month), year); err != nil {
		return nil, err
	}

	var in model.Income
	var amount string
	var m int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount, month, year, created_at
		FROM incomes WHERE user_id = ? AND month = ? AND year = ?
	`, userID, int(month), year).Scan(&in.ID, &in.UserID, &amount, &m, &in.Year, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}

	if in.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	in.Month = time.Month(m)
	return &in, nil
}
