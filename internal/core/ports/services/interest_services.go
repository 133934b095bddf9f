package services

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/dto"
)

// InterestSettingsSvc reads and merges the group's interest configuration.
type InterestSettingsSvc interface {
	GetInterestSettings(ctx context.Context, actor domain.Actor, groupID string) (*domain.InterestSettings, error)
	UpdateInterestSettings(ctx context.Context, actor domain.Actor, groupID string, req dto.UpdateInterestSettingsRequest) (*domain.InterestSettings, error)
}

// InterestAccrualSvc applies interest and produces periodic reminders.
type InterestAccrualSvc interface {
	// RecalculateInterest applies one period of interest to every membership atomically.
	RecalculateInterest(ctx context.Context, actor domain.Actor, groupID string) (*domain.RecalculationResult, error)

	// GenerateMonthlyReminders creates at most one reminder per member for the month of now.
	GenerateMonthlyReminders(ctx context.Context, actor domain.Actor, groupID string, now time.Time) (*domain.ReminderRunResult, error)

	// ListReminders returns the reminders of a period.
	ListReminders(ctx context.Context, actor domain.Actor, groupID, periodKey string) ([]domain.MonthlyReminder, error)
}

// InterestSvcFacade combines all interest-related service interfaces.
type InterestSvcFacade interface {
	InterestSettingsSvc
	InterestAccrualSvc
}
