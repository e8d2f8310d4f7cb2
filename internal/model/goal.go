package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings goal with a target amount and timeframe in whole months.
type Goal struct {
	CreatedAt           time.Time       `json:"created_at"`
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	Name                string          `json:"name"`
	Months              int             `json:"months"`
	Amount              decimal.Decimal `json:"amount"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

// GoalContribution records money put toward a goal.
type GoalContribution struct {
	ContributedAt time.Time       `json:"contributed_at"`
	ID            string          `json:"id"`
	GoalID        string          `json:"goal_id"`
	Amount        decimal.Decimal `json:"amount"`
}
