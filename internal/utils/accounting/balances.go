package accounting

import (
	"sort"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// Outstanding returns max(0, disbursed - repaid) over entries that are not rejected.
func Outstanding(entries []domain.LedgerEntry) int64 {
	disbursed, repaid := totals(entries)
	if disbursed <= repaid {
		return 0
	}
	return disbursed - repaid
}

func totals(entries []domain.LedgerEntry) (disbursed, repaid int64) {
	for _, e := range entries {
		if !e.CountsTowardBalance() {
			continue
		}
		switch e.Type {
		case domain.Disbursement:
			disbursed += e.AmountMinorUnits
		case domain.Repayment:
			repaid += e.AmountMinorUnits
		}
	}
	return disbursed, repaid
}

// SummarizeMember derives the position of one member from entries that all belong to them.
// Over-repayment is floored to zero outstanding and surfaced as CreditMinorUnits.
// LastActivityAt considers every entry, rejected ones included, since a review is activity.
func SummarizeMember(memberID string, entries []domain.LedgerEntry) domain.MemberBalance {
	disbursed, repaid := totals(entries)
	b := domain.MemberBalance{
		MemberID:            memberID,
		DisbursedMinorUnits: disbursed,
		RepaidMinorUnits:    repaid,
		EntryCount:          len(entries),
	}
	if disbursed > repaid {
		b.OutstandingMinorUnits = disbursed - repaid
	} else {
		b.CreditMinorUnits = repaid - disbursed
	}
	for _, e := range entries {
		at := e.OccurredAt
		if b.LastActivityAt == nil || at.After(*b.LastActivityAt) {
			b.LastActivityAt = &at
		}
	}
	return b
}

// GroupBalances groups entries by member and sorts the rows by outstanding descending,
// then most recent activity descending, then member ID.
func GroupBalances(entries []domain.LedgerEntry) []domain.MemberBalance {
	byMember := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		byMember[e.MemberID] = append(byMember[e.MemberID], e)
	}

	balances := make([]domain.MemberBalance, 0, len(byMember))
	for memberID, memberEntries := range byMember {
		balances = append(balances, SummarizeMember(memberID, memberEntries))
	}

	sort.Slice(balances, func(i, j int) bool {
		a, b := balances[i], balances[j]
		if a.OutstandingMinorUnits != b.OutstandingMinorUnits {
			return a.OutstandingMinorUnits > b.OutstandingMinorUnits
		}
		aAt, bAt := lastActivity(a), lastActivity(b)
		if aAt != bAt {
			return aAt > bAt
		}
		return a.MemberID < b.MemberID
	})
	return balances
}

func lastActivity(b domain.MemberBalance) int64 {
	if b.LastActivityAt == nil {
		return 0
	}
	return b.LastActivityAt.UnixNano()
}
