package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/kewat_ledger/internal/models"
	"github.com/SscSPs/kewat_ledger/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(base BaseRepository) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository: base}
}

var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

const selectNotificationFields = `
	notification_id, group_id, title, message, recipient_ids, data,
	status, sent_count, created_at, created_by, sent_at
`

// SaveNotification inserts a notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m, err := mapping.ToModelNotification(notification)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).Exec(ctx, `
		INSERT INTO notifications (`+selectNotificationFields+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		m.NotificationID,
		m.GroupID,
		m.Title,
		m.Message,
		m.RecipientIDs,
		m.Data,
		m.Status,
		m.SentCount,
		m.CreatedAt,
		m.CreatedBy,
		m.SentAt,
	)
	if err != nil {
		return storeError("failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// CompleteNotification records the dispatch outcome once.
func (r *PgxNotificationRepository) CompleteNotification(ctx context.Context, notificationID string, status domain.NotificationStatus, sentCount int, sentAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE notifications SET status = $1, sent_count = $2, sent_at = $3
		WHERE notification_id = $4 AND status = $5
	`, string(status), sentCount, sentAt, notificationID, string(domain.NotificationPending))
	if err != nil {
		return storeError("failed to complete notification "+notificationID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notifications WHERE notification_id = $1)`, notificationID).Scan(&exists); err != nil {
		return storeError("failed to read notification "+notificationID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.NewConflictError("notification " + notificationID + " is no longer pending")
}

// ListNotifications returns the newest notifications of a group first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, groupID string, limit int) ([]domain.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+selectNotificationFields+` FROM notifications
		WHERE group_id = $1
		ORDER BY created_at DESC, notification_id DESC
		LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, storeError("failed to list notifications", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(
			&m.NotificationID,
			&m.GroupID,
			&m.Title,
			&m.Message,
			&m.RecipientIDs,
			&m.Data,
			&m.Status,
			&m.SentCount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.SentAt,
		); err != nil {
			return nil, storeError("failed to scan notification", err)
		}
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

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(base BaseRepository) portsrepo.AuditLogRepository {
	return &PgxAuditRepository{BaseRepository: base}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditRepository)(nil)

const selectAuditLogFields = `audit_log_id, action, actor, group_id, details, role, created_at`

// AppendAuditLog inserts one audit row.
func (r *PgxAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db(ctx).Exec(ctx, `INSERT INTO audit_logs (`+selectAuditLogFields+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.AuditLogID, m.Action, m.Actor, m.GroupID, m.Details, m.Role, m.CreatedAt)
	if err != nil {
		return storeError("failed to insert audit log "+m.AuditLogID, err)
	}
	return nil
}

// ListAuditLogs pages a group's trail by descending ULID.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, groupID string, beforeID *string, limit int) ([]domain.AuditLogEntry, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + selectAuditLogFields + ` FROM audit_logs WHERE group_id = $1`
	args := []any{groupID}
	if beforeID != nil {
		query += ` AND audit_log_id < $2 ORDER BY audit_log_id DESC LIMIT $3`
		args = append(args, *beforeID, limit)
	} else {
		query += ` ORDER BY audit_log_id DESC LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list audit logs", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditLogID, &m.Action, &m.Actor, &m.GroupID, &m.Details, &m.Role, &m.CreatedAt); err != nil {
			return nil, storeError("failed to scan audit log", err)
		}
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
