package domain

import "time"

// MemberBalance is the position of one member derived from ledger history.
type MemberBalance struct {
	MemberID              string     `json:"memberID"`
	DisbursedMinorUnits   int64      `json:"disbursedMinorUnits"`
	RepaidMinorUnits      int64      `json:"repaidMinorUnits"`
	OutstandingMinorUnits int64      `json:"outstandingMinorUnits"`
	CreditMinorUnits      int64      `json:"creditMinorUnits"` // over-repayment, reported only
	EntryCount            int        `json:"entryCount"`
	LastActivityAt        *time.Time `json:"lastActivityAt,omitempty"`
}
