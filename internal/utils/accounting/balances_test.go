package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func entry(member string, typ domain.EntryType, amount int64, status domain.EntryStatus, offset time.Duration) domain.LedgerEntry {
	return domain.LedgerEntry{
		MemberID:         member,
		Type:             typ,
		AmountMinorUnits: amount,
		Status:           status,
		OccurredAt:       base.Add(offset),
	}
}

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.LedgerEntry
		want    int64
	}{
		{name: "no entries", entries: nil, want: 0},
		{
			name: "disbursed minus repaid",
			entries: []domain.LedgerEntry{
				entry("m1", domain.Disbursement, 10000, domain.EntryRecorded, 0),
				entry("m1", domain.Repayment, 2500, domain.EntryVerified, time.Hour),
			},
			want: 7500,
		},
		{
			name: "rejected entries are ignored",
			entries: []domain.LedgerEntry{
				entry("m1", domain.Disbursement, 10000, domain.EntryVerified, 0),
				entry("m1", domain.Disbursement, 99999, domain.EntryRejected, time.Hour),
				entry("m1", domain.Repayment, 4000, domain.EntryRejected, 2*time.Hour),
			},
			want: 10000,
		},
		{
			name: "over-repayment floors at zero",
			entries: []domain.LedgerEntry{
				entry("m1", domain.Disbursement, 1000, domain.EntryRecorded, 0),
				entry("m1", domain.Repayment, 1500, domain.EntryRecorded, time.Hour),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.Outstanding(tt.entries))
		})
	}
}

func TestOutstanding_NeverNegative(t *testing.T) {
	amounts := []int64{1, 7, 100, 2500, 10000, 333333}
	for _, d := range amounts {
		for _, r := range amounts {
			got := accounting.Outstanding([]domain.LedgerEntry{
				entry("m", domain.Disbursement, d, domain.EntryRecorded, 0),
				entry("m", domain.Repayment, r, domain.EntryRecorded, 0),
			})
			want := d - r
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, got, "disbursed %d repaid %d", d, r)
		}
	}
}

func TestSummarizeMember_ReportsCredit(t *testing.T) {
	b := accounting.SummarizeMember("m1", []domain.LedgerEntry{
		entry("m1", domain.Disbursement, 1000, domain.EntryRecorded, 0),
		entry("m1", domain.Repayment, 1500, domain.EntryRecorded, time.Hour),
	})
	assert.Equal(t, int64(0), b.OutstandingMinorUnits)
	assert.Equal(t, int64(500), b.CreditMinorUnits)
	assert.Equal(t, 2, b.EntryCount)
	require.NotNil(t, b.LastActivityAt)
	assert.Equal(t, base.Add(time.Hour), *b.LastActivityAt)
}

func TestGroupBalances_Ordering(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("low", domain.Disbursement, 100, domain.EntryRecorded, 5*time.Hour),
		entry("tie-old", domain.Disbursement, 500, domain.EntryRecorded, time.Hour),
		entry("tie-new", domain.Disbursement, 500, domain.EntryRecorded, 3*time.Hour),
		entry("high", domain.Disbursement, 9000, domain.EntryRecorded, 0),
		entry("high", domain.Repayment, 1000, domain.EntryRecorded, 2*time.Hour),
		entry("settled", domain.Disbursement, 300, domain.EntryRecorded, 0),
		entry("settled", domain.Repayment, 300, domain.EntryRecorded, 6*time.Hour),
	}

	balances := accounting.GroupBalances(entries)

	ids := make([]string, len(balances))
	for i, b := range balances {
		ids[i] = b.MemberID
	}
	assert.Equal(t, []string{"high", "tie-new", "tie-old", "low", "settled"}, ids)
	assert.Equal(t, int64(8000), balances[0].OutstandingMinorUnits)
}

func TestPeriodicInterest(t *testing.T) {
	tests := []struct {
		name      string
		balance   int64
		rate      string
		frequency domain.InterestFrequency
		want      int64
	}{
		{name: "monthly 5 percent on 10000", balance: 10000, rate: "5", frequency: domain.FrequencyMonthly, want: 42},
		{name: "annual 5 percent on 10000", balance: 10000, rate: "5", frequency: domain.FrequencyAnnual, want: 500},
		{name: "daily 36.5 percent on 10000", balance: 10000, rate: "36.5", frequency: domain.FrequencyDaily, want: 10},
		{name: "zero balance", balance: 0, rate: "12", frequency: domain.FrequencyMonthly, want: 0},
		{name: "half rounds up", balance: 50, rate: "12", frequency: domain.FrequencyMonthly, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.PeriodicInterest(tt.balance, decimal.RequireFromString(tt.rate), tt.frequency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleInterestBps(t *testing.T) {
	assert.Equal(t, int64(2500), accounting.SimpleInterestBps(10000, 2500))
	assert.Equal(t, int64(1), accounting.SimpleInterestBps(3, 2500)) // 0.75 rounds up
	assert.Equal(t, int64(0), accounting.SimpleInterestBps(1, 2500)) // 0.25 rounds down
	assert.Equal(t, int64(0), accounting.SimpleInterestBps(10000, 0))
}
