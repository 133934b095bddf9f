package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestFrequency is how often the annual rate is applied.
type InterestFrequency string

const (
	FrequencyDaily   InterestFrequency = "daily"
	FrequencyMonthly InterestFrequency = "monthly"
	FrequencyAnnual  InterestFrequency = "annual"
)

// PeriodsPerYear returns the divisor for the annual rate. Anything but daily or monthly is one period.
func (f InterestFrequency) PeriodsPerYear() int64 {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyDaily:
		return 365
	default:
		return 1
	}
}

// IsValid reports whether f is a known frequency.
func (f InterestFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyMonthly, FrequencyAnnual:
		return true
	}
	return false
}

// DefaultReminderRateBps applies when a group has not configured a reminder rate.
const DefaultReminderRateBps = 2500

// InterestSettings is the single active settings record of a group.
// Nil fields are unset; updates merge into the stored record.
type InterestSettings struct {
	GroupID    string             `json:"groupID"`
	AnnualRate *decimal.Decimal   `json:"annualRate,omitempty"` // percent, 5 means 5%
	Frequency  *InterestFrequency `json:"frequency,omitempty"`
	RateBps    *int               `json:"rateBps,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	UpdatedBy  string             `json:"updatedBy"`
}

// InterestAdjustment is the effect of one recalculation on one membership.
type InterestAdjustment struct {
	MemberID   string `json:"memberID"`
	OldBalance int64  `json:"oldBalance"`
	NewBalance int64  `json:"newBalance"`
	Interest   int64  `json:"interest"`
}

// RecalculationResult summarizes a RecalculateInterest run.
type RecalculationResult struct {
	GroupID         string               `json:"groupID"`
	MembersAffected int                  `json:"membersAffected"`
	Adjustments     []InterestAdjustment `json:"adjustments"`
	AnnualRate      decimal.Decimal      `json:"annualRate"`
	Frequency       InterestFrequency    `json:"frequency"`
	RecalculatedAt  time.Time            `json:"recalculatedAt"`
}
