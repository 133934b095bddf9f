package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListGroupEntries(ctx context.Context, actor domain.Actor, groupID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ListMemberEntries(ctx context.Context, actor domain.Actor, groupID, memberID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, groupID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) RecordEntry(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, groupID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) UpdateEntryStatus(ctx context.Context, actor domain.Actor, groupID, entryID string, req dto.UpdateEntryStatusRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, actor, groupID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) GetMemberBalance(ctx context.Context, actor domain.Actor, groupID, memberID string) (*domain.MemberBalance, error) {
	args := m.Called(ctx, actor, groupID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberBalance), args.Error(1)
}
func (m *MockLedgerService) GetGroupBalances(ctx context.Context, actor domain.Actor, groupID string) ([]domain.MemberBalance, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberBalance), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock InterestService ---
type MockInterestService struct {
	mock.Mock
}

func (m *MockInterestService) GetInterestSettings(ctx context.Context, actor domain.Actor, groupID string) (*domain.InterestSettings, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestSettings), args.Error(1)
}
func (m *MockInterestService) UpdateInterestSettings(ctx context.Context, actor domain.Actor, groupID string, req dto.UpdateInterestSettingsRequest) (*domain.InterestSettings, error) {
	args := m.Called(ctx, actor, groupID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestSettings), args.Error(1)
}
func (m *MockInterestService) RecalculateInterest(ctx context.Context, actor domain.Actor, groupID string) (*domain.RecalculationResult, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculationResult), args.Error(1)
}
func (m *MockInterestService) GenerateMonthlyReminders(ctx context.Context, actor domain.Actor, groupID string, now time.Time) (*domain.ReminderRunResult, error) {
	args := m.Called(ctx, actor, groupID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReminderRunResult), args.Error(1)
}
func (m *MockInterestService) ListReminders(ctx context.Context, actor domain.Actor, groupID, periodKey string) ([]domain.MonthlyReminder, error) {
	args := m.Called(ctx, actor, groupID, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyReminder), args.Error(1)
}

var _ portssvc.InterestSvcFacade = (*MockInterestService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Send(ctx context.Context, actor domain.Actor, groupID string, req dto.SendNotificationRequest) (*domain.DispatchResult, error) {
	args := m.Called(ctx, actor, groupID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchResult), args.Error(1)
}
func (m *MockNotificationService) ListNotifications(ctx context.Context, actor domain.Actor, groupID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, actor, groupID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationService) RegisterPushToken(ctx context.Context, actor domain.Actor, req dto.RegisterPushTokenRequest) error {
	args := m.Called(ctx, actor, req)
	return args.Error(0)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock InviteService ---
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) CreateInviteCode(ctx context.Context, actor domain.Actor, groupID string) (*domain.InviteCode, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}
func (m *MockInviteService) ValidateInviteCode(ctx context.Context, code string) (*domain.InviteValidation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteValidation), args.Error(1)
}

var _ portssvc.InviteSvcFacade = (*MockInviteService)(nil)

// --- Mock GroupService ---
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) AddMember(ctx context.Context, actor domain.Actor, groupID string, req dto.AddMemberRequest) (*domain.Membership, error) {
	args := m.Called(ctx, actor, groupID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockGroupService) ListMembers(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Membership, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockGroupService) ListAuditLogs(ctx context.Context, actor domain.Actor, groupID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	args := m.Called(ctx, actor, groupID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditLogsResponse), args.Error(1)
}

var _ portssvc.GroupSvcFacade = (*MockGroupService)(nil)

// --- Mock AnnouncementService ---
type MockAnnouncementService struct {
	mock.Mock
}

var _ portssvc.AnnouncementSvcFacade = (*MockAnnouncementService)(nil)

func (m *MockAnnouncementService) PostAnnouncement(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateAnnouncementRequest) (*domain.Announcement, error) {
	args := m.Called(ctx, actor, groupID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}
func (m *MockAnnouncementService) ListAnnouncements(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Announcement, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Announcement), args.Error(1)
}
