package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single entry within a group.
	FindEntryByID(ctx context.Context, groupID, entryID string) (*domain.LedgerEntry, error)

	// ListByGroup returns every entry of a group ordered by occurredAt, then creation.
	ListByGroup(ctx context.Context, groupID string) ([]domain.LedgerEntry, error)

	// ListByMember returns every entry of one member in a group, in the same order.
	ListByMember(ctx context.Context, groupID, memberID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// AppendEntry persists a new entry and returns its ID.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (string, error)

	// UpdateStatus moves an entry from one status to another.
	// It fails with apperrors.ErrNotFound if the entry is absent and
	// apperrors.ErrConflict if its current status is not from.
	UpdateStatus(ctx context.Context, groupID, entryID string, from, to domain.EntryStatus, updatedBy string, now time.Time) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
