package services

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/dto"
)

// NotificationDispatcherSvc fans a notification out to push tokens.
type NotificationDispatcherSvc interface {
	// Send persists the notification, attempts every delivery and reports the aggregate.
	// Individual delivery failures never fail the call.
	Send(ctx context.Context, actor domain.Actor, groupID string, req dto.SendNotificationRequest) (*domain.DispatchResult, error)
}

// NotificationInboxSvc covers the non-dispatch side of notifications.
type NotificationInboxSvc interface {
	ListNotifications(ctx context.Context, actor domain.Actor, groupID string, limit int) ([]domain.Notification, error)
	RegisterPushToken(ctx context.Context, actor domain.Actor, req dto.RegisterPushTokenRequest) error
}

// NotificationSvcFacade combines all notification-related service interfaces.
type NotificationSvcFacade interface {
	NotificationDispatcherSvc
	NotificationInboxSvc
}

// AnnouncementSvcFacade manages the group board.
type AnnouncementSvcFacade interface {
	PostAnnouncement(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateAnnouncementRequest) (*domain.Announcement, error)

	// ListAnnouncements returns the latest announcements, newest first.
	ListAnnouncements(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Announcement, error)
}
