package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
)

type notificationRepository struct {
	BaseRepository
}

var _ portsrepo.NotificationRepository = (*notificationRepository)(nil)

const selectNotificationFields = `
	notification_id, group_id, title, message, recipient_ids, data,
	status, sent_count, created_at, created_by, sent_at
`

func (r *notificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m, err := mapping.ToModelNotification(notification)
	if err != nil {
		return err
	}
	var data sql.NullString
	if m.Data != nil {
		data = sql.NullString{String: string(m.Data), Valid: true}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).ExecContext(ctx, `
		INSERT INTO notifications (`+selectNotificationFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.NotificationID,
		m.GroupID,
		m.Title,
		m.Message,
		string(m.RecipientIDs),
		data,
		m.Status,
		m.SentCount,
		toUnix(m.CreatedAt),
		m.CreatedBy,
		toNullUnix(m.SentAt),
	)
	if err != nil {
		return storeError("failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

func (r *notificationRepository) CompleteNotification(ctx context.Context, notificationID string, status domain.NotificationStatus, sentCount int, sentAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db(ctx).ExecContext(ctx, `
		UPDATE notifications SET status = ?, sent_count = ?, sent_at = ?
		WHERE notification_id = ? AND status = ?
	`, string(status), sentCount, toUnix(sentAt), notificationID, string(domain.NotificationPending))
	if err != nil {
		return storeError("failed to complete notification "+notificationID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeError("failed to read update result", err)
	} else if n == 1 {
		return nil
	}

	var exists bool
	if err := r.db(ctx).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM notifications WHERE notification_id = ?)`, notificationID).Scan(&exists); err != nil {
		return storeError("failed to read notification "+notificationID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.NewConflictError("notification " + notificationID + " is no longer pending")
}

func (r *notificationRepository) ListNotifications(ctx context.Context, groupID string, limit int) ([]domain.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).QueryContext(ctx, `
		SELECT `+selectNotificationFields+` FROM notifications
		WHERE group_id = ?
		ORDER BY created_at DESC, notification_id DESC
		LIMIT ?
	`, groupID, limit)
	if err != nil {
		return nil, storeError("failed to list notifications", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		var recipients string
		var data sql.NullString
		var createdAt int64
		var sentAt sql.NullInt64
		if err := rows.Scan(
			&m.NotificationID,
			&m.GroupID,
			&m.Title,
			&m.Message,
			&recipients,
			&data,
			&m.Status,
			&m.SentCount,
			&createdAt,
			&m.CreatedBy,
			&sentAt,
		); err != nil {
			return nil, storeError("failed to scan notification", err)
		}
		m.RecipientIDs = []byte(recipients)
		if data.Valid {
			m.Data = []byte(data.String)
		}
		m.CreatedAt = fromUnix(createdAt)
		m.SentAt = fromNullUnix(sentAt)

		n, err := mapping.ToDomainNotification(m)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating notifications", err)
	}
	return notifications, nil
}

type auditRepository struct {
	BaseRepository
}

var _ portsrepo.AuditLogRepository = (*auditRepository)(nil)

const selectAuditLogFields = `audit_log_id, action, actor, group_id, details, role, created_at`

func (r *auditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).ExecContext(ctx, `INSERT INTO audit_logs (`+selectAuditLogFields+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.AuditLogID, m.Action, m.Actor, nullString(m.GroupID), string(m.Details), m.Role, toUnix(m.CreatedAt))
	if err != nil {
		return storeError("failed to insert audit log "+m.AuditLogID, err)
	}
	return nil
}

func (r *auditRepository) ListAuditLogs(ctx context.Context, groupID string, beforeID *string, limit int) ([]domain.AuditLogEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + selectAuditLogFields + ` FROM audit_logs WHERE group_id = ?`
	args := []any{groupID}
	if beforeID != nil {
		query += ` AND audit_log_id < ?`
		args = append(args, *beforeID)
	}
	query += ` ORDER BY audit_log_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list audit logs", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLog
		var groupID sql.NullString
		var details string
		var createdAt int64
		if err := rows.Scan(&m.AuditLogID, &m.Action, &m.Actor, &groupID, &details, &m.Role, &createdAt); err != nil {
			return nil, storeError("failed to scan audit log", err)
		}
		m.GroupID = fromNullString(groupID)
		m.Details = []byte(details)
		m.CreatedAt = fromUnix(createdAt)

		entry, err := mapping.ToDomainAuditLog(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating audit logs", err)
	}
	return entries, nil
}
