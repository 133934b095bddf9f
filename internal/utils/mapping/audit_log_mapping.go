package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) (models.AuditLog, error) {
	details := d.Details
	if details == nil {
		details = map[string]any{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return models.AuditLog{}, fmt.Errorf("encode audit details: %w", err)
	}
	return models.AuditLog{
		AuditLogID: d.AuditLogID,
		Action:     string(d.Action),
		Actor:      d.Actor,
		GroupID:    d.GroupID,
		Details:    detailsJSON,
		Role:       string(d.Role),
		CreatedAt:  d.Timestamp,
	}, nil
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) (domain.AuditLogEntry, error) {
	details := map[string]any{}
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return domain.AuditLogEntry{}, fmt.Errorf("decode details of %s: %w", m.AuditLogID, err)
		}
	}
	return domain.AuditLogEntry{
		AuditLogID: m.AuditLogID,
		Action:     domain.AuditAction(m.Action),
		Actor:      m.Actor,
		GroupID:    m.GroupID,
		Details:    details,
		Timestamp:  m.CreatedAt.UTC(),
		Role:       domain.Role(m.Role),
	}, nil
}
