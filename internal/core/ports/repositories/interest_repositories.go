package repositories

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// InterestSettingsRepository stores the per-group interest configuration.
type InterestSettingsRepository interface {
	// FindInterestSettings returns apperrors.ErrNotFound when the group has none.
	FindInterestSettings(ctx context.Context, groupID string) (*domain.InterestSettings, error)

	// MergeInterestSettings upserts the record; nil fields keep their stored value.
	MergeInterestSettings(ctx context.Context, settings domain.InterestSettings) (*domain.InterestSettings, error)
}

// ReminderRepository stores monthly reminders, one per (group, member, period).
type ReminderRepository interface {
	// CreateReminderIfAbsent inserts the reminder unless its key exists.
	// It reports whether a row was created.
	CreateReminderIfAbsent(ctx context.Context, reminder domain.MonthlyReminder) (bool, error)

	// ListReminders returns the reminders of a group for one period.
	ListReminders(ctx context.Context, groupID, periodKey string) ([]domain.MonthlyReminder, error)
}
