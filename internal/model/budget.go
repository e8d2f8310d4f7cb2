package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category monthly spending limit. A user has at most one
// budget per (category, month, year); writes upsert on that key.
type Budget struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Category  Category        `json:"category"`
	Month     time.Month      `json:"month"`
	Year      int             `json:"year"`
	Amount    decimal.Decimal `json:"amount"`
}
