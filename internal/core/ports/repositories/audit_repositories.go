package repositories

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// AuditLogRepository is the append-only compliance trail.
type AuditLogRepository interface {
	AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error

	// ListAuditLogs returns up to limit entries of a group, newest first.
	// When beforeID is set only entries with a smaller (older) ID are returned.
	ListAuditLogs(ctx context.Context, groupID string, beforeID *string, limit int) ([]domain.AuditLogEntry, error)
}
