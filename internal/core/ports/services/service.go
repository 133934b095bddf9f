package services

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Authorizer   RoleAuthorizerSvc
	Ledger       LedgerSvcFacade
	Interest     InterestSvcFacade
	Notification NotificationSvcFacade
	Invite       InviteSvcFacade
	Group        GroupSvcFacade
	Announcement AnnouncementSvcFacade
}

// PushSender delivers one message to one device token.
// Implementations must honour ctx cancellation.
type PushSender interface {
	Send(ctx context.Context, msg domain.PushMessage) error
}

// EventPublisher mirrors committed domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}
