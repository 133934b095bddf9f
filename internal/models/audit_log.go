package models

import "time"

// AuditLog is one append-only row of the audit_logs table.
type AuditLog struct {
	AuditLogID string    `db:"audit_log_id"`
	Action     string    `db:"action"`
	Actor      string    `db:"actor"`
	GroupID    *string   `db:"group_id"` // Nullable
	Details    []byte    `db:"details"`  // JSON object
	Role       string    `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
}
