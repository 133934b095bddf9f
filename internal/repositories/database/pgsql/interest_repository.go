package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxInterestSettingsRepository struct {
	BaseRepository
}

func newPgxInterestSettingsRepository(base BaseRepository) portsrepo.InterestSettingsRepository {
	return &PgxInterestSettingsRepository{BaseRepository: base}
}

var _ portsrepo.InterestSettingsRepository = (*PgxInterestSettingsRepository)(nil)

const selectInterestSettingsFields = `group_id, annual_rate, frequency, rate_bps, updated_at, updated_by`

// FindInterestSettings returns the settings of a group.
func (r *PgxInterestSettingsRepository) FindInterestSettings(ctx context.Context, groupID string) (*domain.InterestSettings, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanInterestSettings(r.db(ctx).QueryRow(ctx,
		`SELECT `+selectInterestSettingsFields+` FROM interest_settings WHERE group_id = $1`, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find interest settings", err)
	}
	settings := mapping.ToDomainInterestSettings(m)
	return &settings, nil
}

// MergeInterestSettings upserts the settings; NULL parameters keep the stored column.
func (r *PgxInterestSettingsRepository) MergeInterestSettings(ctx context.Context, settings domain.InterestSettings) (*domain.InterestSettings, error) {
	in := mapping.ToModelInterestSettings(settings)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanInterestSettings(r.db(ctx).QueryRow(ctx, `
		INSERT INTO interest_settings (`+selectInterestSettingsFields+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (group_id) DO UPDATE SET
			annual_rate = COALESCE(EXCLUDED.annual_rate, interest_settings.annual_rate),
			frequency   = COALESCE(EXCLUDED.frequency, interest_settings.frequency),
			rate_bps    = COALESCE(EXCLUDED.rate_bps, interest_settings.rate_bps),
			updated_at  = EXCLUDED.updated_at,
			updated_by  = EXCLUDED.updated_by
		RETURNING `+selectInterestSettingsFields,
		in.GroupID, in.AnnualRate, in.Frequency, in.RateBps, in.UpdatedAt, in.UpdatedBy,
	))
	if err != nil {
		return nil, storeError("failed to merge interest settings", err)
	}
	merged := mapping.ToDomainInterestSettings(m)
	return &merged, nil
}

func scanInterestSettings(row pgx.Row) (models.InterestSettings, error) {
	var m models.InterestSettings
	err := row.Scan(&m.GroupID, &m.AnnualRate, &m.Frequency, &m.RateBps, &m.UpdatedAt, &m.UpdatedBy)
	return m, err
}

type PgxReminderRepository struct {
	BaseRepository
}

func newPgxReminderRepository(base BaseRepository) portsrepo.ReminderRepository {
	return &PgxReminderRepository{BaseRepository: base}
}

var _ portsrepo.ReminderRepository = (*PgxReminderRepository)(nil)

const selectReminderFields = `
	group_id, member_id, period_key, principal_outstanding_paisa, rate_bps,
	interest_paisa, total_due_paisa, status, created_at, created_by
`

// CreateReminderIfAbsent relies on the (group_id, member_id, period_key) key.
func (r *PgxReminderRepository) CreateReminderIfAbsent(ctx context.Context, reminder domain.MonthlyReminder) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO monthly_reminders (`+selectReminderFields+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
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
		reminder.CreatedAt,
		reminder.CreatedBy,
	)
	if err != nil {
		return false, storeError("failed to create reminder", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListReminders returns the reminders of one period ordered by member.
func (r *PgxReminderRepository) ListReminders(ctx context.Context, groupID, periodKey string) ([]domain.MonthlyReminder, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+selectReminderFields+` FROM monthly_reminders WHERE group_id = $1 AND period_key = $2 ORDER BY member_id ASC`,
		groupID, periodKey)
	if err != nil {
		return nil, storeError("failed to list reminders", err)
	}
	defer rows.Close()

	reminders := []domain.MonthlyReminder{}
	for rows.Next() {
		var rem domain.MonthlyReminder
		var status string
		if err := rows.Scan(
			&rem.GroupID,
			&rem.MemberID,
			&rem.PeriodKey,
			&rem.PrincipalOutstandingPaisa,
			&rem.RateBps,
			&rem.InterestPaisa,
			&rem.TotalDuePaisa,
			&status,
			&rem.CreatedAt,
			&rem.CreatedBy,
		); err != nil {
			return nil, storeError("failed to scan reminder", err)
		}
		rem.Status = domain.ReminderStatus(status)
		rem.CreatedAt = rem.CreatedAt.UTC()
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating reminders", err)
	}
	return reminders, nil
}
