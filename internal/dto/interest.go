package dto

import (
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Interest DTOs ---

// UpdateInterestSettingsRequest merges into the group's settings. Omitted fields are unchanged.
type UpdateInterestSettingsRequest struct {
	AnnualRate *decimal.Decimal          `json:"annualRate"` // percent, 0..100
	Frequency  *domain.InterestFrequency `json:"frequency" binding:"omitempty,oneof=daily monthly annual"`
	RateBps    *int                      `json:"rateBps" binding:"omitempty,min=0,max=10000"`
}

// InterestSettingsResponse defines data returned for a group's settings.
type InterestSettingsResponse struct {
	GroupID    string                    `json:"groupID"`
	AnnualRate *decimal.Decimal          `json:"annualRate,omitempty"`
	Frequency  *domain.InterestFrequency `json:"frequency,omitempty"`
	RateBps    int                       `json:"rateBps"`
	UpdatedAt  *time.Time                `json:"updatedAt,omitempty"`
	UpdatedBy  string                    `json:"updatedBy,omitempty"`
}

// ToInterestSettingsResponse fills in the default reminder rate when unset.
func ToInterestSettingsResponse(s *domain.InterestSettings, defaultRateBps int) InterestSettingsResponse {
	resp := InterestSettingsResponse{
		GroupID:    s.GroupID,
		AnnualRate: s.AnnualRate,
		Frequency:  s.Frequency,
		RateBps:    defaultRateBps,
		UpdatedBy:  s.UpdatedBy,
	}
	if s.RateBps != nil {
		resp.RateBps = *s.RateBps
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ListRemindersResponse wraps the reminders of one period.
type ListRemindersResponse struct {
	GroupID   string                   `json:"groupID"`
	PeriodKey string                   `json:"periodKey"`
	Reminders []domain.MonthlyReminder `json:"reminders"`
}
