package dto

import (
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// --- Ledger DTOs ---

// CreateLedgerEntryRequest defines data for recording a disbursement or repayment.
type CreateLedgerEntryRequest struct {
	MemberID        string           `json:"memberID" binding:"required,max=128"`
	Type            domain.EntryType `json:"type" binding:"required,oneof=disbursement repayment"`
	AmountPaisa     int64            `json:"amountPaisa" binding:"required,gt=0"`
	InterestRateBps *int             `json:"interestRateBps" binding:"omitempty,min=0,max=10000"`
	SignedBy        string           `json:"signedBy" binding:"required,max=200"`
	Notes           *string          `json:"notes" binding:"omitempty,max=2000"`
	EvidenceURLs    []string         `json:"evidenceUrls" binding:"omitempty,max=20,dive,url"`
	OccurredAt      *time.Time       `json:"occurredAt"` // RFC 3339, defaults to now
}

// UpdateEntryStatusRequest defines data for reviewing a recorded entry.
type UpdateEntryStatusRequest struct {
	Status domain.EntryStatus `json:"status" binding:"required,oneof=verified rejected"`
}

// CreateLedgerEntryResponse is returned after an entry is recorded.
type CreateLedgerEntryResponse struct {
	Success bool               `json:"success"`
	ID      string             `json:"id"`
	Entry   domain.LedgerEntry `json:"entry"`
}

// ListLedgerEntriesResponse wraps a list of entries.
type ListLedgerEntriesResponse struct {
	Entries []domain.LedgerEntry `json:"entries"`
}

// MemberBalanceResponse is the balance of one member.
type MemberBalanceResponse struct {
	GroupID string               `json:"groupID"`
	Balance domain.MemberBalance `json:"balance"`
}

// GroupBalancesResponse is the monitoring aggregate of a group.
type GroupBalancesResponse struct {
	GroupID               string                 `json:"groupID"`
	TotalOutstandingPaisa int64                  `json:"totalOutstandingPaisa"`
	Balances              []domain.MemberBalance `json:"balances"`
}

// ToGroupBalancesResponse totals the per-member rows.
func ToGroupBalancesResponse(groupID string, balances []domain.MemberBalance) GroupBalancesResponse {
	var total int64
	for _, b := range balances {
		total += b.OutstandingMinorUnits
	}
	if balances == nil {
		balances = []domain.MemberBalance{}
	}
	return GroupBalancesResponse{GroupID: groupID, TotalOutstandingPaisa: total, Balances: balances}
}

// ToListLedgerEntriesResponse wraps entries, never encoding a null list.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry) ListLedgerEntriesResponse {
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return ListLedgerEntriesResponse{Entries: entries}
}
