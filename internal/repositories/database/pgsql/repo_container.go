package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository on one pool.
// timeout bounds each store call; zero disables the bound.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Timeout: timeout}

	return portsrepo.RepositoryProvider{
		TxManager:        newTxManager(dbPool),
		LedgerRepo:       newPgxLedgerRepository(base),
		MembershipRepo:   newPgxMembershipRepository(base),
		PushTokenRepo:    newPgxPushTokenRepository(base),
		SettingsRepo:     newPgxInterestSettingsRepository(base),
		ReminderRepo:     newPgxReminderRepository(base),
		InviteRepo:       newPgxInviteRepository(base),
		NotificationRepo: newPgxNotificationRepository(base),
		AnnouncementRepo: newPgxAnnouncementRepository(base),
		AuditRepo:        newPgxAuditRepository(base),
	}
}
