package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestSettings mirrors the interest_settings table. Unset columns are NULL.
type InterestSettings struct {
	GroupID    string              `db:"group_id"`
	AnnualRate decimal.NullDecimal `db:"annual_rate"`
	Frequency  *string             `db:"frequency"`
	RateBps    *int                `db:"rate_bps"`
	UpdatedAt  time.Time           `db:"updated_at"`
	UpdatedBy  string              `db:"updated_by"`
}
