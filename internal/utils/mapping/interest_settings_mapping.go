package mapping

import (
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelInterestSettings converts domain InterestSettings to model InterestSettings
func ToModelInterestSettings(d domain.InterestSettings) models.InterestSettings {
	m := models.InterestSettings{
		GroupID:   d.GroupID,
		RateBps:   d.RateBps,
		UpdatedAt: d.UpdatedAt,
		UpdatedBy: d.UpdatedBy,
	}
	if d.AnnualRate != nil {
		m.AnnualRate = decimal.NewNullDecimal(*d.AnnualRate)
	}
	if d.Frequency != nil {
		f := string(*d.Frequency)
		m.Frequency = &f
	}
	return m
}

// ToDomainInterestSettings converts model InterestSettings to domain InterestSettings
func ToDomainInterestSettings(m models.InterestSettings) domain.InterestSettings {
	d := domain.InterestSettings{
		GroupID:   m.GroupID,
		RateBps:   m.RateBps,
		UpdatedAt: m.UpdatedAt.UTC(),
		UpdatedBy: m.UpdatedBy,
	}
	if m.AnnualRate.Valid {
		rate := m.AnnualRate.Decimal
		d.AnnualRate = &rate
	}
	if m.Frequency != nil {
		f := domain.InterestFrequency(*m.Frequency)
		d.Frequency = &f
	}
	return d
}
