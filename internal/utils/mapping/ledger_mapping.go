package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) (models.LedgerEntry, error) {
	urls := d.EvidenceURLs
	if urls == nil {
		urls = []string{}
	}
	evidence, err := json.Marshal(urls)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("encode evidence urls: %w", err)
	}
	return models.LedgerEntry{
		LedgerEntryID:    d.LedgerEntryID,
		GroupID:          d.GroupID,
		MemberID:         d.MemberID,
		EntryType:        string(d.Type),
		AmountMinorUnits: d.AmountMinorUnits,
		InterestRateBps:  d.InterestRateBps,
		SignedBy:         d.SignedBy,
		Notes:            d.Notes,
		EvidenceURLs:     evidence,
		Status:           string(d.Status),
		OccurredAt:       d.OccurredAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	urls := []string{}
	if len(m.EvidenceURLs) > 0 {
		if err := json.Unmarshal(m.EvidenceURLs, &urls); err != nil {
			return domain.LedgerEntry{}, fmt.Errorf("decode evidence urls of %s: %w", m.LedgerEntryID, err)
		}
	}
	return domain.LedgerEntry{
		LedgerEntryID:    m.LedgerEntryID,
		GroupID:          m.GroupID,
		MemberID:         m.MemberID,
		Type:             domain.EntryType(m.EntryType),
		AmountMinorUnits: m.AmountMinorUnits,
		InterestRateBps:  m.InterestRateBps,
		SignedBy:         m.SignedBy,
		Notes:            m.Notes,
		EvidenceURLs:     urls,
		Status:           domain.EntryStatus(m.Status),
		OccurredAt:       m.OccurredAt.UTC(),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainLedgerEntries converts a slice of model LedgerEntry to domain LedgerEntry
func ToDomainLedgerEntries(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		d, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
