package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// NotificationRepository stores notifications and their dispatch outcome.
type NotificationRepository interface {
	// SaveNotification inserts a notification in its initial status.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// CompleteNotification records the final status of a pending notification.
	// It fails with apperrors.ErrConflict if the notification is no longer pending.
	CompleteNotification(ctx context.Context, notificationID string, status domain.NotificationStatus, sentCount int, sentAt time.Time) error

	// ListNotifications returns the most recent notifications of a group.
	ListNotifications(ctx context.Context, groupID string, limit int) ([]domain.Notification, error)
}

// AnnouncementRepository stores the group board.
type AnnouncementRepository interface {
	SaveAnnouncement(ctx context.Context, announcement domain.Announcement) error

	// ListAnnouncements returns the newest announcements of a group first.
	ListAnnouncements(ctx context.Context, groupID string, limit int) ([]domain.Announcement, error)
}
