package services

import (
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil, in which case audit entries are not mirrored.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sender portssvc.PushSender, events portssvc.EventPublisher) *portssvc.ServiceContainer {
	authorizer := NewRoleAuthorizer()

	base := BaseService{
		Authorizer: authorizer,
		TxManager:  repos.TxManager,
		AuditRepo:  repos.AuditRepo,
		Events:     events,
	}

	return &portssvc.ServiceContainer{
		Authorizer: authorizer,
		Ledger:     NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo),
		Interest: NewInterestService(base, InterestRepositories{
			Ledger:        repos.LedgerRepo,
			Memberships:   repos.MembershipRepo,
			Settings:      repos.SettingsRepo,
			Reminders:     repos.ReminderRepo,
			Notifications: repos.NotificationRepo,
		}, cfg.DefaultReminderRateBps),
		Notification: NewNotificationService(base, repos.NotificationRepo, repos.MembershipRepo, repos.PushTokenRepo, sender, DispatchOptions{
			Concurrency: cfg.DispatchConcurrency,
			PushTimeout: cfg.PushTimeout,
		}),
		Invite: NewInviteService(base, repos.InviteRepo,
			WithInviteTTL(cfg.InviteTTL),
			WithDailyInviteLimit(cfg.InviteDailyLimit),
		),
		Group:        NewGroupService(base, repos.MembershipRepo),
		Announcement: NewAnnouncementService(base, repos.AnnouncementRepo, repos.MembershipRepo),
	}
}
