package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxInviteRepository struct {
	BaseRepository
}

func newPgxInviteRepository(base BaseRepository) portsrepo.InviteRepository {
	return &PgxInviteRepository{BaseRepository: base}
}

var _ portsrepo.InviteRepository = (*PgxInviteRepository)(nil)

const selectInviteFields = `code, group_id, created_by, created_at, expires_at, used, used_by, used_at`

// SaveInviteCode inserts a code. A collision reports ErrDuplicate without
// aborting the surrounding transaction, so the caller can retry in it.
func (r *PgxInviteRepository) SaveInviteCode(ctx context.Context, code domain.InviteCode) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO invite_codes (`+selectInviteFields+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING
	`, code.Code, code.GroupID, code.CreatedBy, code.CreatedAt, code.ExpiresAt, code.Used, code.UsedBy, code.UsedAt)
	if err != nil {
		return storeError("failed to insert invite code", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// FindInviteCode looks a code up.
func (r *PgxInviteRepository) FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var c domain.InviteCode
	err := r.db(ctx).QueryRow(ctx, `SELECT `+selectInviteFields+` FROM invite_codes WHERE code = $1`, code).Scan(
		&c.Code, &c.GroupID, &c.CreatedBy, &c.CreatedAt, &c.ExpiresAt, &c.Used, &c.UsedBy, &c.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find invite code", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.ExpiresAt = c.ExpiresAt.UTC()
	return &c, nil
}

// ReserveDailyIssue increments the counter only while it is below limit.
func (r *PgxInviteRepository) ReserveDailyIssue(ctx context.Context, actorID, groupID, day string, limit int) (bool, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db(ctx).QueryRow(ctx, `
		INSERT INTO invite_rate_counters (actor_id, group_id, day_key, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (actor_id, group_id, day_key) DO UPDATE
			SET count = invite_rate_counters.count + 1
			WHERE invite_rate_counters.count < $4
		RETURNING count
	`, actorID, groupID, day, limit).Scan(&count)
	if err == nil {
		return true, count, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, 0, storeError("failed to reserve invite slot", err)
	}

	err = r.db(ctx).QueryRow(ctx,
		`SELECT count FROM invite_rate_counters WHERE actor_id = $1 AND group_id = $2 AND day_key = $3`,
		actorID, groupID, day).Scan(&count)
	if err != nil {
		return false, 0, storeError("failed to read invite counter", err)
	}
	return false, count, nil
}
