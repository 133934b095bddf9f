package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
)

type inviteRepository struct {
	BaseRepository
}

var _ portsrepo.InviteRepository = (*inviteRepository)(nil)

const selectInviteFields = `code, group_id, created_by, created_at, expires_at, used, used_by, used_at`

func (r *inviteRepository) SaveInviteCode(ctx context.Context, code domain.InviteCode) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		INSERT INTO invite_codes (`+selectInviteFields+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO NOTHING
	`,
		code.Code,
		code.GroupID,
		code.CreatedBy,
		toUnix(code.CreatedAt),
		toUnix(code.ExpiresAt),
		code.Used,
		nullString(code.UsedBy),
		toNullUnix(code.UsedAt),
	)
	if err != nil {
		return storeError("failed to insert invite code", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError("failed to read insert result", err)
	}
	if n == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

func (r *inviteRepository) FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var c domain.InviteCode
	var createdAt, expiresAt int64
	var usedBy sql.NullString
	var usedAt sql.NullInt64
	err := r.db(ctx).QueryRowContext(ctx, `SELECT `+selectInviteFields+` FROM invite_codes WHERE code = ?`, code).Scan(
		&c.Code, &c.GroupID, &c.CreatedBy, &createdAt, &expiresAt, &c.Used, &usedBy, &usedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find invite code", err)
	}
	c.CreatedAt = fromUnix(createdAt)
	c.ExpiresAt = fromUnix(expiresAt)
	c.UsedBy = fromNullString(usedBy)
	c.UsedAt = fromNullUnix(usedAt)
	return &c, nil
}

func (r *inviteRepository) ReserveDailyIssue(ctx context.Context, actorID, groupID, day string, limit int) (bool, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	err := r.db(ctx).QueryRowContext(ctx, `
		INSERT INTO invite_rate_counters (actor_id, group_id, day_key, count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (actor_id, group_id, day_key) DO UPDATE
			SET count = count + 1
			WHERE count < ?
		RETURNING count
	`, actorID, groupID, day, limit).Scan(&count)
	if err == nil {
		return true, count, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, 0, storeError("failed to reserve invite slot", err)
	}

	err = r.db(ctx).QueryRowContext(ctx,
		`SELECT count FROM invite_rate_counters WHERE actor_id = ? AND group_id = ? AND day_key = ?`,
		actorID, groupID, day).Scan(&count)
	if err != nil {
		return false, 0, storeError("failed to read invite counter", err)
	}
	return false, count, nil
}
