package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix nanoseconds in UTC; JSON documents as TEXT.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS memberships (
		group_id            TEXT    NOT NULL,
		user_id             TEXT    NOT NULL,
		role                TEXT    NOT NULL CHECK (role IN ('member', 'admin', 'dev')),
		display_name        TEXT    NOT NULL,
		balance_minor_units INTEGER NOT NULL DEFAULT 0,
		joined_at           INTEGER NOT NULL,
		last_updated_at     INTEGER NOT NULL,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		ledger_entry_id    TEXT    PRIMARY KEY,
		group_id           TEXT    NOT NULL,
		member_id          TEXT    NOT NULL,
		entry_type         TEXT    NOT NULL CHECK (entry_type IN ('disbursement', 'repayment')),
		amount_minor_units INTEGER NOT NULL CHECK (amount_minor_units > 0),
		interest_rate_bps  INTEGER NOT NULL DEFAULT 0,
		signed_by          TEXT    NOT NULL,
		notes              TEXT,
		evidence_urls      TEXT    NOT NULL DEFAULT '[]',
		status             TEXT    NOT NULL CHECK (status IN ('recorded', 'verified', 'rejected')),
		occurred_at        INTEGER NOT NULL,
		created_at         INTEGER NOT NULL,
		created_by         TEXT    NOT NULL,
		last_updated_at    INTEGER NOT NULL,
		last_updated_by    TEXT    NOT NULL,
		FOREIGN KEY (group_id, member_id) REFERENCES memberships (group_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_group_occurred ON ledger_entries (group_id, occurred_at, created_at)`,
	`CREATE TABLE IF NOT EXISTS push_tokens (
		user_id    TEXT    PRIMARY KEY,
		token      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS interest_settings (
		group_id    TEXT    PRIMARY KEY,
		annual_rate TEXT,
		frequency   TEXT,
		rate_bps    INTEGER,
		updated_at  INTEGER NOT NULL,
		updated_by  TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_reminders (
		group_id                    TEXT    NOT NULL,
		member_id                   TEXT    NOT NULL,
		period_key                  TEXT    NOT NULL,
		principal_outstanding_paisa INTEGER NOT NULL,
		rate_bps                    INTEGER NOT NULL,
		interest_paisa              INTEGER NOT NULL,
		total_due_paisa             INTEGER NOT NULL,
		status                      TEXT    NOT NULL,
		created_at                  INTEGER NOT NULL,
		created_by                  TEXT    NOT NULL,
		PRIMARY KEY (group_id, member_id, period_key)
	)`,
	`CREATE TABLE IF NOT EXISTS invite_codes (
		code       TEXT    PRIMARY KEY,
		group_id   TEXT    NOT NULL,
		created_by TEXT    NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL,
		used       INTEGER NOT NULL DEFAULT 0,
		used_by    TEXT,
		used_at    INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS invite_rate_counters (
		actor_id TEXT    NOT NULL,
		group_id TEXT    NOT NULL,
		day_key  TEXT    NOT NULL,
		count    INTEGER NOT NULL,
		PRIMARY KEY (actor_id, group_id, day_key)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id TEXT    PRIMARY KEY,
		group_id        TEXT    NOT NULL,
		title           TEXT    NOT NULL,
		message         TEXT    NOT NULL,
		recipient_ids   TEXT    NOT NULL DEFAULT '[]',
		data            TEXT,
		status          TEXT    NOT NULL CHECK (status IN ('pending', 'sent', 'failed', 'stored')),
		sent_count      INTEGER NOT NULL DEFAULT 0,
		created_at      INTEGER NOT NULL,
		created_by      TEXT    NOT NULL,
		sent_at         INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_group_created ON notifications (group_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS announcements (
		announcement_id TEXT    PRIMARY KEY,
		group_id        TEXT    NOT NULL,
		title           TEXT    NOT NULL,
		message         TEXT    NOT NULL,
		created_at      INTEGER NOT NULL,
		created_by      TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_announcements_group_created ON announcements (group_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		audit_log_id TEXT    PRIMARY KEY,
		action       TEXT    NOT NULL,
		actor        TEXT    NOT NULL,
		group_id     TEXT,
		details      TEXT    NOT NULL DEFAULT '{}',
		role         TEXT    NOT NULL,
		created_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_group ON audit_logs (group_id, audit_log_id)`,
}

// EnsureSchema creates every table that does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
