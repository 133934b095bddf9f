package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/core/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/kewat_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteBase returns repositories on a fresh in-memory database and a base
// service whose clock the test can move.
func newSQLiteBase(t *testing.T) (portsrepo.RepositoryProvider, services.BaseService, *time.Time) {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, database.MemorySQLitePath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.EnsureSchema(ctx, db))

	repos := sqlite.NewRepositoryProvider(db, 5*time.Second)
	clock := fixedNow
	base := services.BaseService{
		Authorizer: services.NewRoleAuthorizer(),
		TxManager:  repos.TxManager,
		AuditRepo:  repos.AuditRepo,
		Clock:      func() time.Time { return clock },
	}
	return repos, base, &clock
}

func newStoreInterestService(base services.BaseService, repos portsrepo.RepositoryProvider, reminders portsrepo.ReminderRepository) portssvc.InterestSvcFacade {
	return services.NewInterestService(base, services.InterestRepositories{
		Ledger:        repos.LedgerRepo,
		Memberships:   repos.MembershipRepo,
		Settings:      repos.SettingsRepo,
		Reminders:     reminders,
		Notifications: repos.NotificationRepo,
	}, domain.DefaultReminderRateBps)
}

func auditCounts(t *testing.T, repos portsrepo.RepositoryProvider, groupID string) map[domain.AuditAction]int {
	t.Helper()
	logs, err := repos.AuditRepo.ListAuditLogs(context.Background(), groupID, nil, 200)
	require.NoError(t, err)
	counts := map[domain.AuditAction]int{}
	for _, l := range logs {
		counts[l.Action]++
	}
	return counts
}

func TestRecalculationAccruesOnRecordedLedger(t *testing.T) {
	ctx := context.Background()
	repos, base, _ := newSQLiteBase(t)

	groups := services.NewGroupService(base, repos.MembershipRepo)
	ledger := services.NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo)
	interest := newStoreInterestService(base, repos, repos.ReminderRepo)

	_, err := groups.AddMember(ctx, adminActor, "g1", dto.AddMemberRequest{UserID: "member-1", DisplayName: "Sita"})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(ctx, adminActor, "g1", dto.CreateLedgerEntryRequest{
		MemberID: "member-1", Type: domain.Disbursement, AmountPaisa: 10000, SignedBy: "Sita",
	})
	require.NoError(t, err)

	rate := decimal.NewFromInt(5)
	freq := domain.FrequencyMonthly
	_, err = interest.UpdateInterestSettings(ctx, adminActor, "g1", dto.UpdateInterestSettingsRequest{AnnualRate: &rate, Frequency: &freq})
	require.NoError(t, err)

	result, err := interest.RecalculateInterest(ctx, adminActor, "g1")
	require.NoError(t, err)
	require.Equal(t, 1, result.MembersAffected)
	assert.Equal(t, int64(42), result.Adjustments[0].Interest)
	assert.Equal(t, int64(10000), result.Adjustments[0].OldBalance)

	m, err := repos.MembershipRepo.FindMembership(ctx, "g1", "member-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10042), m.BalanceMinorUnits)
}

func TestCachedBalanceFollowsLedgerReview(t *testing.T) {
	ctx := context.Background()
	repos, base, _ := newSQLiteBase(t)

	groups := services.NewGroupService(base, repos.MembershipRepo)
	ledger := services.NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo)
	balanceOf := func() int64 {
		m, err := repos.MembershipRepo.FindMembership(ctx, "g1", "member-1")
		require.NoError(t, err)
		return m.BalanceMinorUnits
	}
	record := func(typ domain.EntryType, amount int64) string {
		e, err := ledger.RecordEntry(ctx, adminActor, "g1", dto.CreateLedgerEntryRequest{
			MemberID: "member-1", Type: typ, AmountPaisa: amount, SignedBy: "Sita",
		})
		require.NoError(t, err)
		return e.LedgerEntryID
	}

	_, err := groups.AddMember(ctx, adminActor, "g1", dto.AddMemberRequest{UserID: "member-1", DisplayName: "Sita"})
	require.NoError(t, err)

	record(domain.Disbursement, 10000)
	repayment := record(domain.Repayment, 3000)
	assert.Equal(t, int64(7000), balanceOf())

	_, err = ledger.UpdateEntryStatus(ctx, adminActor, "g1", repayment, dto.UpdateEntryStatusRequest{Status: domain.EntryRejected})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), balanceOf(), "a rejected repayment no longer reduces the balance")

	verified := record(domain.Repayment, 12000)
	_, err = ledger.UpdateEntryStatus(ctx, adminActor, "g1", verified, dto.UpdateEntryStatusRequest{Status: domain.EntryVerified})
	require.NoError(t, err)
	assert.Equal(t, int64(-2000), balanceOf(), "over-repayment is kept as credit")

	position, err := ledger.GetMemberBalance(ctx, adminActor, "g1", "member-1")
	require.NoError(t, err)
	assert.Zero(t, position.OutstandingMinorUnits)
	assert.Equal(t, int64(2000), position.CreditMinorUnits)
}

func TestCreditBalanceAccruesNoInterest(t *testing.T) {
	ctx := context.Background()
	repos, base, _ := newSQLiteBase(t)

	groups := services.NewGroupService(base, repos.MembershipRepo)
	ledger := services.NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo)
	interest := newStoreInterestService(base, repos, repos.ReminderRepo)

	_, err := groups.AddMember(ctx, adminActor, "g1", dto.AddMemberRequest{UserID: "member-1", DisplayName: "Sita"})
	require.NoError(t, err)
	_, err = ledger.RecordEntry(ctx, adminActor, "g1", dto.CreateLedgerEntryRequest{
		MemberID: "member-1", Type: domain.Repayment, AmountPaisa: 5000, SignedBy: "Sita",
	})
	require.NoError(t, err)

	rate := decimal.NewFromInt(12)
	freq := domain.FrequencyMonthly
	_, err = interest.UpdateInterestSettings(ctx, adminActor, "g1", dto.UpdateInterestSettingsRequest{AnnualRate: &rate, Frequency: &freq})
	require.NoError(t, err)

	result, err := interest.RecalculateInterest(ctx, adminActor, "g1")
	require.NoError(t, err)
	assert.Zero(t, result.MembersAffected)

	m, err := repos.MembershipRepo.FindMembership(ctx, "g1", "member-1")
	require.NoError(t, err)
	assert.Equal(t, int64(-5000), m.BalanceMinorUnits)
}

// failingReminders fails the nth create so that a reminder run stops part way through.
type failingReminders struct {
	portsrepo.ReminderRepository
	failOn int
	calls  int
}

func (f *failingReminders) CreateReminderIfAbsent(ctx context.Context, reminder domain.MonthlyReminder) (bool, error) {
	f.calls++
	if f.calls == f.failOn {
		return false, apperrors.NewUnavailableError("reminder store down", nil)
	}
	return f.ReminderRepository.CreateReminderIfAbsent(ctx, reminder)
}

func TestFailedReminderRunLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	repos, base, _ := newSQLiteBase(t)

	groups := services.NewGroupService(base, repos.MembershipRepo)
	ledger := services.NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo)
	for _, id := range []string{"member-1", "member-2"} {
		_, err := groups.AddMember(ctx, adminActor, "g1", dto.AddMemberRequest{UserID: id, DisplayName: id})
		require.NoError(t, err)
		_, err = ledger.RecordEntry(ctx, adminActor, "g1", dto.CreateLedgerEntryRequest{
			MemberID: id, Type: domain.Disbursement, AmountPaisa: 10000, SignedBy: id,
		})
		require.NoError(t, err)
	}

	flaky := &failingReminders{ReminderRepository: repos.ReminderRepo, failOn: 2}
	_, err := newStoreInterestService(base, repos, flaky).GenerateMonthlyReminders(ctx, adminActor, "g1", fixedNow)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	reminders, err := repos.ReminderRepo.ListReminders(ctx, "g1", "2025-03")
	require.NoError(t, err)
	assert.Empty(t, reminders, "the first member's reminder is rolled back with the run")
	inbox, err := repos.NotificationRepo.ListNotifications(ctx, "g1", 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)
	assert.Zero(t, auditCounts(t, repos, "g1")[domain.ActionMonthlyRemindersGenerated])

	run, err := newStoreInterestService(base, repos, repos.ReminderRepo).GenerateMonthlyReminders(ctx, adminActor, "g1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Created)
	assert.Zero(t, run.Skipped)
	assert.Equal(t, 1, auditCounts(t, repos, "g1")[domain.ActionMonthlyRemindersGenerated])
}

func TestMonthlyRemindersAreIdempotentAgainstStore(t *testing.T) {
	ctx := context.Background()
	repos, base, _ := newSQLiteBase(t)

	groups := services.NewGroupService(base, repos.MembershipRepo)
	ledger := services.NewLedgerService(base, repos.LedgerRepo, repos.MembershipRepo)
	interest := services.NewInterestService(base, services.InterestRepositories{
		Ledger:        repos.LedgerRepo,
		Memberships:   repos.MembershipRepo,
		Settings:      repos.SettingsRepo,
		Reminders:     repos.ReminderRepo,
		Notifications: repos.NotificationRepo,
	}, domain.DefaultReminderRateBps)

	for _, req := range []dto.AddMemberRequest{
		{UserID: "member-1", DisplayName: "Sita"},
		{UserID: "member-2", DisplayName: "Gita"},
		{UserID: "admin-1", DisplayName: "Hari", Role: domain.RoleAdmin},
	} {
		_, err := groups.AddMember(ctx, adminActor, "g1", req)
		require.NoError(t, err)
	}
	_, err := ledger.RecordEntry(ctx, adminActor, "g1", dto.CreateLedgerEntryRequest{
		MemberID: "member-1", Type: domain.Disbursement, AmountPaisa: 10000, SignedBy: "Sita",
	})
	require.NoError(t, err)

	first, err := interest.GenerateMonthlyReminders(ctx, adminActor, "g1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-03", first.PeriodKey)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 1, first.Skipped)

	second, err := interest.GenerateMonthlyReminders(ctx, adminActor, "g1", fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)

	reminders, err := interest.ListReminders(ctx, adminActor, "g1", "2025-03")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, int64(12500), reminders[0].TotalDuePaisa)

	inbox, err := repos.NotificationRepo.ListNotifications(ctx, "g1", 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotificationStored, inbox[0].Status)
	assert.Equal(t, []string{"member-1"}, inbox[0].RecipientIDs)

	logs, err := repos.AuditRepo.ListAuditLogs(ctx, "g1", nil, 50)
	require.NoError(t, err)
	counts := map[domain.AuditAction]int{}
	for _, l := range logs {
		counts[l.Action]++
	}
	assert.Equal(t, 3, counts[domain.ActionMemberAdded])
	assert.Equal(t, 1, counts[domain.ActionLedgerEntryCreated])
	assert.Equal(t, 2, counts[domain.ActionMonthlyRemindersGenerated])
}

func TestInviteDailyLimitResetsNextUTCDay(t *testing.T) {
	ctx := context.Background()
	repos, base, clock := newSQLiteBase(t)
	invites := services.NewInviteService(base, repos.InviteRepo)

	for i := 0; i < 10; i++ {
		_, err := invites.CreateInviteCode(ctx, adminActor, "g1")
		require.NoError(t, err, "invite %d", i+1)
	}

	_, err := invites.CreateInviteCode(ctx, adminActor, "g1")
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)

	other, err := invites.CreateInviteCode(ctx, devActor, "g1")
	require.NoError(t, err, "the limit is per actor")

	*clock = time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)
	next, err := invites.CreateInviteCode(ctx, adminActor, "g1")
	require.NoError(t, err)
	assert.Equal(t, clock.Add(14*24*time.Hour), next.ExpiresAt)

	validation, err := invites.ValidateInviteCode(ctx, other.Code)
	require.NoError(t, err)
	assert.Equal(t, "g1", validation.GroupID)

	logs, err := repos.AuditRepo.ListAuditLogs(ctx, "g1", nil, 50)
	require.NoError(t, err)
	assert.Len(t, logs, 12, "the refused attempt leaves no audit entry")
}
