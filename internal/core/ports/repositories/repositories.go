package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	LedgerRepo       LedgerRepositoryFacade
	MembershipRepo   MembershipRepositoryFacade
	PushTokenRepo    PushTokenRepository
	SettingsRepo     InterestSettingsRepository
	ReminderRepo     ReminderRepository
	InviteRepo       InviteRepository
	NotificationRepo NotificationRepository
	AnnouncementRepo AnnouncementRepository
	AuditRepo        AuditLogRepository
}
