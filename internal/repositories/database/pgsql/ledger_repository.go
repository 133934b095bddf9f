package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(base BaseRepository) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const (
	selectLedgerEntryFields = `
		ledger_entry_id, group_id, member_id, entry_type, amount_minor_units, interest_rate_bps,
		signed_by, notes, evidence_urls, status, occurred_at,
		created_at, created_by, last_updated_at, last_updated_by
	`

	insertLedgerEntryQuery = `
		INSERT INTO ledger_entries (` + selectLedgerEntryFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	// Entries are ordered by occurrence; the ULID breaks ties in creation order.
	ledgerEntryOrder = ` ORDER BY occurred_at ASC, created_at ASC, ledger_entry_id ASC`
)

// AppendEntry inserts a new ledger entry.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	m, err := mapping.ToModelLedgerEntry(entry)
	if err != nil {
		return "", err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).Exec(ctx, insertLedgerEntryQuery,
		m.LedgerEntryID,
		m.GroupID,
		m.MemberID,
		m.EntryType,
		m.AmountMinorUnits,
		m.InterestRateBps,
		m.SignedBy,
		m.Notes,
		m.EvidenceURLs,
		m.Status,
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", storeError("failed to insert ledger entry "+m.LedgerEntryID, err)
	}
	return m.LedgerEntryID, nil
}

// FindEntryByID retrieves a single entry of a group.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, groupID, entryID string) (*domain.LedgerEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + selectLedgerEntryFields + ` FROM ledger_entries WHERE group_id = $1 AND ledger_entry_id = $2`
	m, err := scanLedgerEntry(r.db(ctx).QueryRow(ctx, query, groupID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

// ListByGroup returns every entry of a group.
func (r *PgxLedgerRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + selectLedgerEntryFields + ` FROM ledger_entries WHERE group_id = $1` + ledgerEntryOrder
	return r.list(ctx, query, groupID)
}

// ListByMember returns every entry of one member in a group.
func (r *PgxLedgerRepository) ListByMember(ctx context.Context, groupID, memberID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + selectLedgerEntryFields + ` FROM ledger_entries WHERE group_id = $1 AND member_id = $2` + ledgerEntryOrder
	return r.list(ctx, query, groupID, memberID)
}

func (r *PgxLedgerRepository) list(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx, query, args...)
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

// UpdateStatus is a conditional write on the current status; a miss is resolved
// into NotFound or Conflict with a follow-up read.
func (r *PgxLedgerRepository) UpdateStatus(ctx context.Context, groupID, entryID string, from, to domain.EntryStatus, updatedBy string, now time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE ledger_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE group_id = $4 AND ledger_entry_id = $5 AND status = $6
	`, string(to), now, updatedBy, groupID, entryID, string(from))
	if err != nil {
		return storeError("failed to update status of ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.db(ctx).QueryRow(ctx, `SELECT status FROM ledger_entries WHERE group_id = $1 AND ledger_entry_id = $2`, groupID, entryID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return storeError("failed to read status of ledger entry "+entryID, err)
	}
	return apperrors.NewConflictError("ledger entry " + entryID + " is " + current + ", not " + string(from))
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.LedgerEntryID,
		&m.GroupID,
		&m.MemberID,
		&m.EntryType,
		&m.AmountMinorUnits,
		&m.InterestRateBps,
		&m.SignedBy,
		&m.Notes,
		&m.EvidenceURLs,
		&m.Status,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
