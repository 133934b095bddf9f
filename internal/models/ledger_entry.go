package models

import "time"

// LedgerEntry is the storage shape of a ledger entry.
// EvidenceURLs holds a JSON array.
type LedgerEntry struct {
	LedgerEntryID    string    `db:"ledger_entry_id"`
	GroupID          string    `db:"group_id"`
	MemberID         string    `db:"member_id"`
	EntryType        string    `db:"entry_type"`
	AmountMinorUnits int64     `db:"amount_minor_units"`
	InterestRateBps  int       `db:"interest_rate_bps"`
	SignedBy         string    `db:"signed_by"`
	Notes            *string   `db:"notes"` // Nullable
	EvidenceURLs     []byte    `db:"evidence_urls"`
	Status           string    `db:"status"`
	OccurredAt       time.Time `db:"occurred_at"`
	AuditFields
}
