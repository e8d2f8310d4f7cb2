package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single persisted spending record.
type Expense struct {
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// Income is a user's declared income for a given month.
type Income struct {
	CreatedAt time.Time       `json:"created_at"`
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Month     time.Month      `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
}
