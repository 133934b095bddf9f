package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
)

type membershipRepository struct {
	BaseRepository
}

var _ portsrepo.MembershipRepositoryFacade = (*membershipRepository)(nil)

const selectMembershipFields = `group_id, user_id, role, display_name, balance_minor_units, joined_at, last_updated_at`

func (r *membershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		INSERT INTO memberships (`+selectMembershipFields+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`,
		membership.GroupID,
		membership.UserID,
		string(membership.Role),
		membership.DisplayName,
		membership.BalanceMinorUnits,
		toUnix(membership.JoinedAt),
		toUnix(membership.LastUpdatedAt),
	)
	if err != nil {
		return storeError("failed to insert membership", err)
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

func (r *membershipRepository) FindMembership(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanMembership(r.db(ctx).QueryRowContext(ctx,
		`SELECT `+selectMembershipFields+` FROM memberships WHERE group_id = ? AND user_id = ?`, groupID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find membership", err)
	}
	return &m, nil
}

func (r *membershipRepository) ListMemberships(ctx context.Context, groupID string) ([]domain.Membership, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).QueryContext(ctx,
		`SELECT `+selectMembershipFields+` FROM memberships WHERE group_id = ? ORDER BY user_id ASC`, groupID)
	if err != nil {
		return nil, storeError("failed to list memberships", err)
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, storeError("failed to scan membership", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating memberships", err)
	}
	return memberships, nil
}

// ApplyBalanceUpdates applies each compare-and-set in order and stops at the first miss.
func (r *membershipRepository) ApplyBalanceUpdates(ctx context.Context, groupID string, updates []domain.BalanceUpdate, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	for _, u := range updates {
		res, err := r.db(ctx).ExecContext(ctx, `
			UPDATE memberships SET balance_minor_units = ?, last_updated_at = ?
			WHERE group_id = ? AND user_id = ? AND balance_minor_units = ?
		`, u.NewBalance, toUnix(now), groupID, u.UserID, u.OldBalance)
		if err != nil {
			return storeError("failed to update balance of "+u.UserID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storeError("failed to read update result", err)
		}
		if n != 1 {
			return apperrors.NewConflictError("balance of " + u.UserID + " changed during recalculation")
		}
	}
	return nil
}

func (r *membershipRepository) AdjustBalance(ctx context.Context, groupID, userID string, delta int64, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		UPDATE memberships SET balance_minor_units = balance_minor_units + ?, last_updated_at = ?
		WHERE group_id = ? AND user_id = ?
	`, delta, toUnix(now), groupID, userID)
	if err != nil {
		return storeError("failed to adjust balance of "+userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeError("failed to read update result", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanMembership(row scanner) (domain.Membership, error) {
	var m domain.Membership
	var role string
	var joinedAt, updatedAt int64
	if err := row.Scan(&m.GroupID, &m.UserID, &role, &m.DisplayName, &m.BalanceMinorUnits, &joinedAt, &updatedAt); err != nil {
		return m, err
	}
	m.Role = domain.Role(role)
	m.JoinedAt = fromUnix(joinedAt)
	m.LastUpdatedAt = fromUnix(updatedAt)
	return m, nil
}

type pushTokenRepository struct {
	BaseRepository
}

var _ portsrepo.PushTokenRepository = (*pushTokenRepository)(nil)

func (r *pushTokenRepository) UpsertPushToken(ctx context.Context, token domain.PushToken) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db(ctx).ExecContext(ctx, `
		INSERT INTO push_tokens (user_id, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`, token.UserID, token.Token, toUnix(token.UpdatedAt))
	if err != nil {
		return storeError("failed to upsert push token", err)
	}
	return nil
}

func (r *pushTokenRepository) FindPushTokens(ctx context.Context, userIDs []string) (map[string]string, error) {
	tokens := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return tokens, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(userIDs)), ", ")

	rows, err := r.db(ctx).QueryContext(ctx, `SELECT user_id, token FROM push_tokens WHERE user_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, storeError("failed to find push tokens", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID, token string
		if err := rows.Scan(&userID, &token); err != nil {
			return nil, storeError("failed to scan push token", err)
		}
		tokens[userID] = token
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating push tokens", err)
	}
	return tokens, nil
}
