package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
)

type interestSettingsRepository struct {
	BaseRepository
}

var _ portsrepo.InterestSettingsRepository = (*interestSettingsRepository)(nil)

const selectInterestSettingsFields = `group_id, annual_rate, frequency, rate_bps, updated_at, updated_by`

func (r *interestSettingsRepository) FindInterestSettings(ctx context.Context, groupID string) (*domain.InterestSettings, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanInterestSettings(r.db(ctx).QueryRowContext(ctx,
		`SELECT `+selectInterestSettingsFields+` FROM interest_settings WHERE group_id = ?`, groupID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find interest settings", err)
	}
	settings := mapping.ToDomainInterestSettings(m)
	return &settings, nil
}

func (r *interestSettingsRepository) MergeInterestSettings(ctx context.Context, settings domain.InterestSettings) (*domain.InterestSettings, error) {
	in := mapping.ToModelInterestSettings(settings)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanInterestSettings(r.db(ctx).QueryRowContext(ctx, `
		INSERT INTO interest_settings (`+selectInterestSettingsFields+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (group_id) DO UPDATE SET
			annual_rate = COALESCE(excluded.annual_rate, annual_rate),
			frequency   = COALESCE(excluded.frequency, frequency),
			rate_bps    = COALESCE(excluded.rate_bps, rate_bps),
			updated_at  = excluded.updated_at,
			updated_by  = excluded.updated_by
		RETURNING `+selectInterestSettingsFields,
		in.GroupID, in.AnnualRate, in.Frequency, in.RateBps, toUnix(in.UpdatedAt), in.UpdatedBy,
	))
	if err != nil {
		return nil, storeError("failed to merge interest settings", err)
	}
	merged := mapping.ToDomainInterestSettings(m)
	return &merged, nil
}

func scanInterestSettings(row scanner) (models.InterestSettings, error) {
	var m models.InterestSettings
	var updatedAt int64
	if err := row.Scan(&m.GroupID, &m.AnnualRate, &m.Frequency, &m.RateBps, &updatedAt, &m.UpdatedBy); err != nil {
		return m, err
	}
	m.UpdatedAt = fromUnix(updatedAt)
	return m, nil
}

type reminderRepository struct {
	BaseRepository
}

var _ portsrepo.ReminderRepository = (*reminderRepository)(nil)

const selectReminderFields = `
	group_id, member_id, period_key, principal_outstanding_paisa, rate_bps,
	interest_paisa, total_due_paisa, status, created_at, created_by
`

func (r *reminderRepository) CreateReminderIfAbsent(ctx context.Context, reminder domain.MonthlyReminder) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		INSERT INTO monthly_reminders (`+selectReminderFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (group_id, member_id, period_key) DO NOTHING
	`,
		reminder.GroupID,
		reminder.MemberID,
		reminder.PeriodKey,
		reminder.PrincipalOutstandingPaisa,
		reminder.RateBps,
		reminder.InterestPaisa,
		reminder.TotalDuePaisa,
		string(reminder.Status),
		toUnix(reminder.CreatedAt),
		reminder.CreatedBy,
	)
	if err != nil {
		return false, storeError("failed to create reminder", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeError("failed to read insert result", err)
	}
	return n == 1, nil
}

func (r *reminderRepository) ListReminders(ctx context.Context, groupID, periodKey string) ([]domain.MonthlyReminder, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).QueryContext(ctx,
		`SELECT `+selectReminderFields+` FROM monthly_reminders WHERE group_id = ? AND period_key = ? ORDER BY member_id ASC`,
		groupID, periodKey)
	if err != nil {
		return nil, storeError("failed to list reminders", err)
	}
	defer rows.Close()

	reminders := []domain.MonthlyReminder{}
	for rows.Next() {
		var rem domain.MonthlyReminder
		var status string
		var createdAt int64
		if err := rows.Scan(
			&rem.GroupID,
			&rem.MemberID,
			&rem.PeriodKey,
			&rem.PrincipalOutstandingPaisa,
			&rem.RateBps,
			&rem.InterestPaisa,
			&rem.TotalDuePaisa,
			&status,
			&createdAt,
			&rem.CreatedBy,
		); err != nil {
			return nil, storeError("failed to scan reminder", err)
		}
		rem.Status = domain.ReminderStatus(status)
		rem.CreatedAt = fromUnix(createdAt)
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating reminders", err)
	}
	return reminders, nil
}
