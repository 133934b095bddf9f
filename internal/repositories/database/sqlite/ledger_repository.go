package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
)

type ledgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

const (
	selectLedgerEntryFields = `
		ledger_entry_id, group_id, member_id, entry_type, amount_minor_units, interest_rate_bps,
		signed_by, notes, evidence_urls, status, occurred_at,
		created_at, created_by, last_updated_at, last_updated_by
	`
	ledgerEntryOrder = ` ORDER BY occurred_at ASC, created_at ASC, ledger_entry_id ASC`
)

func (r *ledgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	m, err := mapping.ToModelLedgerEntry(entry)
	if err != nil {
		return "", err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).ExecContext(ctx, `
		INSERT INTO ledger_entries (`+selectLedgerEntryFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.LedgerEntryID,
		m.GroupID,
		m.MemberID,
		m.EntryType,
		m.AmountMinorUnits,
		m.InterestRateBps,
		m.SignedBy,
		nullString(m.Notes),
		string(m.EvidenceURLs),
		m.Status,
		toUnix(m.OccurredAt),
		toUnix(m.CreatedAt),
		m.CreatedBy,
		toUnix(m.LastUpdatedAt),
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", storeError("failed to insert ledger entry "+m.LedgerEntryID, err)
	}
	return m.LedgerEntryID, nil
}

func (r *ledgerRepository) FindEntryByID(ctx context.Context, groupID, entryID string) (*domain.LedgerEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanLedgerEntry(r.db(ctx).QueryRowContext(ctx,
		`SELECT `+selectLedgerEntryFields+` FROM ledger_entries WHERE group_id = ? AND ledger_entry_id = ?`, groupID, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storeError("failed to find ledger entry "+entryID, err)
	}
	entry, err := mapping.ToDomainLedgerEntry(m)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.LedgerEntry, error) {
	return r.list(ctx, `SELECT `+selectLedgerEntryFields+` FROM ledger_entries WHERE group_id = ?`+ledgerEntryOrder, groupID)
}

func (r *ledgerRepository) ListByMember(ctx context.Context, groupID, memberID string) ([]domain.LedgerEntry, error) {
	return r.list(ctx, `SELECT `+selectLedgerEntryFields+` FROM ledger_entries WHERE group_id = ? AND member_id = ?`+ledgerEntryOrder, groupID, memberID)
}

func (r *ledgerRepository) list(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list ledger entries", err)
	}
	defer rows.Close()

	var ms []models.LedgerEntry
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, storeError("failed to scan ledger entry", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating ledger entries", err)
	}
	return mapping.ToDomainLedgerEntries(ms)
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, groupID, entryID string, from, to domain.EntryStatus, updatedBy string, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		UPDATE ledger_entries
		SET status = ?, last_updated_at = ?, last_updated_by = ?
		WHERE group_id = ? AND ledger_entry_id = ? AND status = ?
	`, string(to), toUnix(now), updatedBy, groupID, entryID, string(from))
	if err != nil {
		return storeError("failed to update status of ledger entry "+entryID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeError("failed to read update result", err)
	} else if n == 1 {
		return nil
	}

	var current string
	err = r.db(ctx).QueryRowContext(ctx, `SELECT status FROM ledger_entries WHERE group_id = ? AND ledger_entry_id = ?`, groupID, entryID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return storeError("failed to read status of ledger entry "+entryID, err)
	}
	return apperrors.NewConflictError("ledger entry " + entryID + " is " + current + ", not " + string(from))
}

func scanLedgerEntry(row scanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var notes sql.NullString
	var evidence string
	var occurredAt, createdAt, updatedAt int64
	err := row.Scan(
		&m.LedgerEntryID,
		&m.GroupID,
		&m.MemberID,
		&m.EntryType,
		&m.AmountMinorUnits,
		&m.InterestRateBps,
		&m.SignedBy,
		&notes,
		&evidence,
		&m.Status,
		&occurredAt,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	m.Notes = fromNullString(notes)
	m.EvidenceURLs = []byte(evidence)
	m.OccurredAt = fromUnix(occurredAt)
	m.CreatedAt = fromUnix(createdAt)
	m.LastUpdatedAt = fromUnix(updatedAt)
	return m, nil
}
