package domain

import "time"

// AuditAction names a state change recorded in the audit log.
type AuditAction string

const (
	ActionLedgerEntryCreated        AuditAction = "ledger_entry_created"
	ActionLedgerEntryStatusUpdated  AuditAction = "ledger_entry_status_updated"
	ActionInterestRecalculated      AuditAction = "interest_recalculated"
	ActionInterestSettingsUpdated   AuditAction = "interest_settings_updated"
	ActionMonthlyRemindersGenerated AuditAction = "monthly_reminders_generated"
	ActionNotificationSent          AuditAction = "notification_sent"
	ActionInviteCodeCreated         AuditAction = "invite_code_created"
	ActionMemberAdded               AuditAction = "member_added"
	ActionPushTokenRegistered       AuditAction = "push_token_registered"
	ActionAnnouncementCreated       AuditAction = "announcement_created"
)

// AuditLogEntry is an append-only compliance record.
type AuditLogEntry struct {
	AuditLogID string         `json:"auditLogID"`
	Action     AuditAction    `json:"action"`
	Actor      string         `json:"actor"`
	GroupID    *string        `json:"groupID,omitempty"`
	Details    map[string]any `json:"details"`
	Timestamp  time.Time      `json:"timestamp"`
	Role       Role           `json:"role"`
}
