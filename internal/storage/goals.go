package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// AddGoal persists a savings goal, assigning it an ID if unset.
func (s *SQLiteStorage) AddGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, name, amount, months, monthly_contribution)
		VALUES (?, ?, ?, ?, ?, ?)
	`, goal.ID, goal.UserID, goal.Name, goal.Amount.String(), goal.Months,
		goal.MonthlyContribution.String())
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	slog.Debug("Goal saved", "id", goal.ID, "user", goal.UserID, "name", goal.Name,
		"amount", goal.Amount, "months", goal.Months)
	return nil
}

// GetUserGoals returns all goals of a user, newest first.
func (s *SQLiteStorage) GetUserGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, amount, months, monthly_contribution, created_at
		FROM goals WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var amount, contribution string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &amount, &g.Months,
			&contribution, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		if g.MonthlyContribution, err = decimal.NewFromString(contribution); err != nil {
			return nil, fmt.Errorf("failed to parse stored contribution %q: %w", contribution, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// AddGoalContribution records a contribution toward a goal.
func (s *SQLiteStorage) AddGoalContribution(ctx context.Context, contribution *model.GoalContribution) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if contribution == nil {
		return fmt.Errorf("%w: contribution", ErrNilParameter)
	}
	if err := validateString(contribution.GoalID, "goalID"); err != nil {
		return err
	}
	if contribution.Amount.IsNegative() || contribution.Amount.IsZero() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, contribution.Amount)
	}

	if contribution.ID == "" {
		contribution.ID = uuid.New().String()
	}
	if contribution.ContributedAt.IsZero() {
		contribution.ContributedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goal_contributions (id, goal_id, amount, contributed_at)
		VALUES (?, ?, ?, ?)
	`, contribution.ID, contribution.GoalID, contribution.Amount.String(),
		contribution.ContributedAt)
	if err != nil {
		return fmt.Errorf("failed to insert goal contribution: %w", err)
	}
	return nil
}
