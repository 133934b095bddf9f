package domain

import "time"

// EntryType classifies a ledger movement.
type EntryType string

const (
	Disbursement EntryType = "disbursement"
	Repayment    EntryType = "repayment"
)

// EntryStatus is the review state of a ledger entry.
type EntryStatus string

const (
	EntryRecorded EntryStatus = "recorded"
	EntryVerified EntryStatus = "verified"
	EntryRejected EntryStatus = "rejected"
)

// CanTransitionTo reports whether the status may move to next.
// Only recorded entries can change, and only to verified or rejected.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	return s == EntryRecorded && (next == EntryVerified || next == EntryRejected)
}

// LedgerEntry is an immutable money movement between the circle and one member.
// Only Status (and the matching LastUpdated fields) ever change after creation.
type LedgerEntry struct {
	LedgerEntryID    string      `json:"ledgerEntryID"`
	GroupID          string      `json:"groupID"`
	MemberID         string      `json:"memberID"`
	Type             EntryType   `json:"type"`
	AmountMinorUnits int64       `json:"amountMinorUnits"` // paisa
	InterestRateBps  int         `json:"interestRateBps"`
	SignedBy         string      `json:"signedBy"`
	Notes            *string     `json:"notes,omitempty"`
	EvidenceURLs     []string    `json:"evidenceUrls"`
	Status           EntryStatus `json:"status"`
	OccurredAt       time.Time   `json:"occurredAt"`
	AuditFields
}

// CountsTowardBalance reports whether the entry participates in balance computation.
func (e LedgerEntry) CountsTowardBalance() bool {
	return e.Status != EntryRejected
}

// BalanceEffect is the signed change the entry makes to the member's position:
// positive for a disbursement, negative for a repayment.
func (e LedgerEntry) BalanceEffect() int64 {
	if e.Type == Repayment {
		return -e.AmountMinorUnits
	}
	return e.AmountMinorUnits
}
