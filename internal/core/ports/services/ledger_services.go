package services

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger data.
type LedgerReaderSvc interface {
	// ListGroupEntries returns every entry in a group. Admin only.
	ListGroupEntries(ctx context.Context, actor domain.Actor, groupID string) ([]domain.LedgerEntry, error)

	// ListMemberEntries returns the history of one member. Members may only read their own.
	ListMemberEntries(ctx context.Context, actor domain.Actor, groupID, memberID string) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc defines write operations for ledger data.
type LedgerWriterSvc interface {
	// RecordEntry validates and appends a new entry in status recorded.
	RecordEntry(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)

	// UpdateEntryStatus verifies or rejects a recorded entry.
	UpdateEntryStatus(ctx context.Context, actor domain.Actor, groupID, entryID string, req dto.UpdateEntryStatusRequest) (*domain.LedgerEntry, error)
}

// BalanceSvc derives balances from ledger history.
type BalanceSvc interface {
	// GetMemberBalance returns the outstanding position of one member.
	GetMemberBalance(ctx context.Context, actor domain.Actor, groupID, memberID string) (*domain.MemberBalance, error)

	// GetGroupBalances returns one row per member sorted for monitoring.
	GetGroupBalances(ctx context.Context, actor domain.Actor, groupID string) ([]domain.MemberBalance, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	BalanceSvc
}
