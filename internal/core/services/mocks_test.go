package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
// It runs fn inline; commit and rollback are the caller's return value.
type MockTxManager struct {
	Calls int
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, groupID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, groupID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListByMember(ctx context.Context, groupID, memberID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, groupID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) UpdateStatus(ctx context.Context, groupID, entryID string, from, to domain.EntryStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, groupID, entryID, from, to, updatedBy, now)
	return args.Error(0)
}

// --- Mock MembershipRepository ---
type MockMembershipRepository struct {
	mock.Mock
}

var _ portsrepo.MembershipRepositoryFacade = (*MockMembershipRepository)(nil)

func (m *MockMembershipRepository) ListMemberships(ctx context.Context, groupID string) ([]domain.Membership, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindMembership(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) ApplyBalanceUpdates(ctx context.Context, groupID string, updates []domain.BalanceUpdate, now time.Time) error {
	args := m.Called(ctx, groupID, updates, now)
	return args.Error(0)
}

func (m *MockMembershipRepository) AdjustBalance(ctx context.Context, groupID, userID string, delta int64, now time.Time) error {
	args := m.Called(ctx, groupID, userID, delta, now)
	return args.Error(0)
}

// --- Mock PushTokenRepository ---
type MockPushTokenRepository struct {
	mock.Mock
}

var _ portsrepo.PushTokenRepository = (*MockPushTokenRepository)(nil)

func (m *MockPushTokenRepository) UpsertPushToken(ctx context.Context, token domain.PushToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockPushTokenRepository) FindPushTokens(ctx context.Context, userIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Mock InterestSettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.InterestSettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindInterestSettings(ctx context.Context, groupID string) (*domain.InterestSettings, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestSettings), args.Error(1)
}

func (m *MockSettingsRepository) MergeInterestSettings(ctx context.Context, settings domain.InterestSettings) (*domain.InterestSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestSettings), args.Error(1)
}

// --- Mock ReminderRepository ---
type MockReminderRepository struct {
	mock.Mock
}

var _ portsrepo.ReminderRepository = (*MockReminderRepository)(nil)

func (m *MockReminderRepository) CreateReminderIfAbsent(ctx context.Context, reminder domain.MonthlyReminder) (bool, error) {
	args := m.Called(ctx, reminder)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) ListReminders(ctx context.Context, groupID, periodKey string) ([]domain.MonthlyReminder, error) {
	args := m.Called(ctx, groupID, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyReminder), args.Error(1)
}

// --- Mock InviteRepository ---
type MockInviteRepository struct {
	mock.Mock
}

var _ portsrepo.InviteRepository = (*MockInviteRepository)(nil)

func (m *MockInviteRepository) SaveInviteCode(ctx context.Context, code domain.InviteCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockInviteRepository) FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}

func (m *MockInviteRepository) ReserveDailyIssue(ctx context.Context, actorID, groupID, day string, limit int) (bool, int, error) {
	args := m.Called(ctx, actorID, groupID, day, limit)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepository = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CompleteNotification(ctx context.Context, notificationID string, status domain.NotificationStatus, sentCount int, sentAt time.Time) error {
	args := m.Called(ctx, notificationID, status, sentCount, sentAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, groupID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// --- Mock AnnouncementRepository ---
type MockAnnouncementRepository struct {
	mock.Mock
}

var _ portsrepo.AnnouncementRepository = (*MockAnnouncementRepository)(nil)

func (m *MockAnnouncementRepository) SaveAnnouncement(ctx context.Context, announcement domain.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockAnnouncementRepository) ListAnnouncements(ctx context.Context, groupID string, limit int) ([]domain.Announcement, error) {
	args := m.Called(ctx, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Announcement), args.Error(1)
}

// --- Mock AuditLogRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, groupID string, beforeID *string, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, groupID, beforeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Mock PushSender ---
type MockPushSender struct {
	mock.Mock
}

var _ portssvc.PushSender = (*MockPushSender)(nil)

func (m *MockPushSender) Send(ctx context.Context, msg domain.PushMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// Test actors.
var (
	adminActor  = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	devActor    = domain.Actor{UserID: "dev-1", Role: domain.RoleDev}
	memberActor = domain.Actor{UserID: "member-1", Role: domain.RoleMember}
)

func auditAction(action domain.AuditAction) any {
	return mock.MatchedBy(func(e domain.AuditLogEntry) bool { return e.Action == action })
}
