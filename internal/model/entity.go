package model

import "github.com/shopspring/decimal"

// ExtractedEntity holds the structured fields pulled out of a free-text
// utterance. A zero value means the extractor found nothing.
type ExtractedEntity struct {
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	HasAmount   bool            `json:"has_amount"`
}

// IsEmpty reports whether extraction produced no usable fields.
func (e ExtractedEntity) IsEmpty() bool {
	return !e.HasAmount && e.Description == ""
}
