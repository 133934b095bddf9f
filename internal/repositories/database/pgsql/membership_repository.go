package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(base BaseRepository) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{BaseRepository: base}
}

var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

const selectMembershipFields = `group_id, user_id, role, display_name, balance_minor_units, joined_at, last_updated_at`

// SaveMembership inserts a membership. ON CONFLICT keeps a surrounding transaction usable.
func (r *PgxMembershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO memberships (`+selectMembershipFields+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`,
		membership.GroupID,
		membership.UserID,
		string(membership.Role),
		membership.DisplayName,
		membership.BalanceMinorUnits,
		membership.JoinedAt,
		membership.LastUpdatedAt,
	)
	if err != nil {
		return storeError("failed to insert membership", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

// FindMembership retrieves one membership.
func (r *PgxMembershipRepository) FindMembership(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanMembership(r.db(ctx).QueryRow(ctx,
		`SELECT `+selectMembershipFields+` FROM memberships WHERE group_id = $1 AND user_id = $2`, groupID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find membership", err)
	}
	return &m, nil
}

// ListMemberships returns the roster of a group ordered by user ID.
func (r *PgxMembershipRepository) ListMemberships(ctx context.Context, groupID string) ([]domain.Membership, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+selectMembershipFields+` FROM memberships WHERE group_id = $1 ORDER BY user_id ASC`, groupID)
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

// ApplyBalanceUpdates sends every compare-and-set in one batch and fails on the first miss.
func (r *PgxMembershipRepository) ApplyBalanceUpdates(ctx context.Context, groupID string, updates []domain.BalanceUpdate, now time.Time) error {
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
			UPDATE memberships
			SET balance_minor_units = $1, last_updated_at = $2
			WHERE group_id = $3 AND user_id = $4 AND balance_minor_units = $5
		`, u.NewBalance, now, groupID, u.UserID, u.OldBalance)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()

	for _, u := range updates {
		tag, err := br.Exec()
		if err != nil {
			return storeError("failed to update balance of "+u.UserID, err)
		}
		if tag.RowsAffected() != 1 {
			return apperrors.NewConflictError("balance of " + u.UserID + " changed during recalculation")
		}
	}
	if err := br.Close(); err != nil {
		return storeError("failed to close balance update batch", err)
	}
	return nil
}

// AdjustBalance moves one cached balance by delta in a single statement.
func (r *PgxMembershipRepository) AdjustBalance(ctx context.Context, groupID, userID string, delta int64, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE memberships
		SET balance_minor_units = balance_minor_units + $1, last_updated_at = $2
		WHERE group_id = $3 AND user_id = $4
	`, delta, now, groupID, userID)
	if err != nil {
		return storeError("failed to adjust balance of "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanMembership(row pgx.Row) (domain.Membership, error) {
	var m domain.Membership
	var role string
	err := row.Scan(&m.GroupID, &m.UserID, &role, &m.DisplayName, &m.BalanceMinorUnits, &m.JoinedAt, &m.LastUpdatedAt)
	m.Role = domain.Role(role)
	m.JoinedAt = m.JoinedAt.UTC()
	m.LastUpdatedAt = m.LastUpdatedAt.UTC()
	return m, err
}

type PgxPushTokenRepository struct {
	BaseRepository
}

func newPgxPushTokenRepository(base BaseRepository) portsrepo.PushTokenRepository {
	return &PgxPushTokenRepository{BaseRepository: base}
}

var _ portsrepo.PushTokenRepository = (*PgxPushTokenRepository)(nil)

// UpsertPushToken registers or replaces the token of a user.
func (r *PgxPushTokenRepository) UpsertPushToken(ctx context.Context, token domain.PushToken) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO push_tokens (user_id, token, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at
	`, token.UserID, token.Token, token.UpdatedAt)
	if err != nil {
		return storeError("failed to upsert push token", err)
	}
	return nil
}

// FindPushTokens returns the token of each listed user that has one.
func (r *PgxPushTokenRepository) FindPushTokens(ctx context.Context, userIDs []string) (map[string]string, error) {
	tokens := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return tokens, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx, `SELECT user_id, token FROM push_tokens WHERE user_id = ANY($1)`, userIDs)
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
