package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelLedgerEntry_NilEvidenceStoredAsEmptyArray(t *testing.T) {
	m, err := ToModelLedgerEntry(domain.LedgerEntry{LedgerEntryID: "e1"})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(m.EvidenceURLs))
}

func TestToDomainLedgerEntry_BadEvidence(t *testing.T) {
	_, err := ToDomainLedgerEntry(models.LedgerEntry{LedgerEntryID: "e1", EvidenceURLs: []byte(`{`)})
	assert.ErrorContains(t, err, "e1")
}

func TestToDomainNotification_DefaultsRecipients(t *testing.T) {
	d, err := ToDomainNotification(models.Notification{NotificationID: "n1", Status: "stored"})
	require.NoError(t, err)
	assert.NotNil(t, d.RecipientIDs)
	assert.True(t, d.IsBroadcast())
	assert.Nil(t, d.Data)
}

func TestToModelNotification_OmitsNilData(t *testing.T) {
	m, err := ToModelNotification(domain.Notification{NotificationID: "n1", RecipientIDs: []string{"u1"}})
	require.NoError(t, err)
	assert.Nil(t, m.Data)
	assert.JSONEq(t, `["u1"]`, string(m.RecipientIDs))
}

func TestInterestSettingsMapping_KeepsUnsetFieldsNil(t *testing.T) {
	rate := decimal.RequireFromString("5.5")
	m := ToModelInterestSettings(domain.InterestSettings{GroupID: "g1", AnnualRate: &rate, UpdatedAt: time.Unix(0, 0)})

	assert.True(t, m.AnnualRate.Valid)
	assert.Nil(t, m.Frequency)
	assert.Nil(t, m.RateBps)

	d := ToDomainInterestSettings(m)
	require.NotNil(t, d.AnnualRate)
	assert.True(t, rate.Equal(*d.AnnualRate))
	assert.Nil(t, d.Frequency)
}

func TestToDomainAuditLog_EmptyDetails(t *testing.T) {
	d, err := ToDomainAuditLog(models.AuditLog{AuditLogID: "a1", Action: "member_added"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionMemberAdded, d.Action)
	assert.Empty(t, d.Details)
	assert.NotNil(t, d.Details)
}
