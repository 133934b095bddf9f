package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/core/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

type LedgerServiceTestSuite struct {
	suite.Suite
	ledgerRepo     *MockLedgerRepository
	membershipRepo *MockMembershipRepository
	auditRepo      *MockAuditRepository
	txManager      *MockTxManager
	service        portssvc.LedgerSvcFacade
	ctx            context.Context
	groupID        string
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ledgerRepo = new(MockLedgerRepository)
	s.membershipRepo = new(MockMembershipRepository)
	s.auditRepo = new(MockAuditRepository)
	s.txManager = &MockTxManager{}
	s.ctx = context.Background()
	s.groupID = "group-1"

	base := services.BaseService{
		Authorizer: services.NewRoleAuthorizer(),
		TxManager:  s.txManager,
		AuditRepo:  s.auditRepo,
		Clock:      func() time.Time { return fixedNow },
	}
	s.service = services.NewLedgerService(base, s.ledgerRepo, s.membershipRepo)
}

func (s *LedgerServiceTestSuite) validRequest() dto.CreateLedgerEntryRequest {
	return dto.CreateLedgerEntryRequest{
		MemberID:    "member-1",
		Type:        domain.Disbursement,
		AmountPaisa: 500000,
		SignedBy:    "Treasurer",
	}
}

func (s *LedgerServiceTestSuite) TestRecordEntry_Success() {
	req := s.validRequest()
	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(&domain.Membership{GroupID: s.groupID, UserID: "member-1"}, nil).Once()
	s.ledgerRepo.On("AppendEntry", s.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Status == domain.EntryRecorded && e.AmountMinorUnits == 500000 && e.InterestRateBps == 0 &&
			e.OccurredAt.Equal(fixedNow) && e.CreatedBy == adminActor.UserID && e.EvidenceURLs != nil
	})).Return("entry-1", nil).Once()
	s.membershipRepo.On("AdjustBalance", s.ctx, s.groupID, "member-1", int64(500000), fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionLedgerEntryCreated &&
			e.Details["ledgerEntryId"] == "entry-1" &&
			e.Details["amountPaisa"] == int64(500000) &&
			e.GroupID != nil && *e.GroupID == s.groupID &&
			e.Role == domain.RoleAdmin
	})).Return(nil).Once()

	entry, err := s.service.RecordEntry(s.ctx, adminActor, s.groupID, req)

	s.Require().NoError(err)
	s.Equal("entry-1", entry.LedgerEntryID)
	s.Equal(domain.EntryRecorded, entry.Status)
	s.Equal(1, s.txManager.Calls)
	s.ledgerRepo.AssertExpectations(s.T())
	s.membershipRepo.AssertExpectations(s.T())
	s.auditRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestRecordEntry_RepaymentLowersCachedBalance() {
	req := s.validRequest()
	req.Type = domain.Repayment
	req.AmountPaisa = 2500
	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(&domain.Membership{}, nil).Once()
	s.ledgerRepo.On("AppendEntry", s.ctx, mock.Anything).Return("entry-3", nil).Once()
	s.membershipRepo.On("AdjustBalance", s.ctx, s.groupID, "member-1", int64(-2500), fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, auditAction(domain.ActionLedgerEntryCreated)).Return(nil).Once()

	_, err := s.service.RecordEntry(s.ctx, adminActor, s.groupID, req)

	s.Require().NoError(err)
	s.membershipRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestRecordEntry_KeepsProvidedFields() {
	req := s.validRequest()
	rate := 150
	occurred := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.FixedZone("NPT", 5*3600+45*60))
	req.InterestRateBps = &rate
	req.OccurredAt = &occurred

	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(&domain.Membership{}, nil).Once()
	s.ledgerRepo.On("AppendEntry", s.ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.InterestRateBps == 150 && e.OccurredAt.Equal(occurred) && e.OccurredAt.Location() == time.UTC
	})).Return("entry-2", nil).Once()
	s.membershipRepo.On("AdjustBalance", s.ctx, s.groupID, "member-1", int64(500000), fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, auditAction(domain.ActionLedgerEntryCreated)).Return(nil).Once()

	_, err := s.service.RecordEntry(s.ctx, devActor, s.groupID, req)
	s.Require().NoError(err)
	s.ledgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestRecordEntry_MemberForbidden() {
	_, err := s.service.RecordEntry(s.ctx, memberActor, s.groupID, s.validRequest())

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.ledgerRepo.AssertNotCalled(s.T(), "AppendEntry", mock.Anything, mock.Anything)
	s.Zero(s.txManager.Calls)
}

func (s *LedgerServiceTestSuite) TestRecordEntry_ValidationErrors() {
	testCases := []struct {
		name   string
		mutate func(*dto.CreateLedgerEntryRequest)
	}{
		{"zero amount", func(r *dto.CreateLedgerEntryRequest) { r.AmountPaisa = 0 }},
		{"negative amount", func(r *dto.CreateLedgerEntryRequest) { r.AmountPaisa = -5 }},
		{"unknown type", func(r *dto.CreateLedgerEntryRequest) { r.Type = "transfer" }},
		{"missing signer", func(r *dto.CreateLedgerEntryRequest) { r.SignedBy = "" }},
		{"rate out of range", func(r *dto.CreateLedgerEntryRequest) { v := 10001; r.InterestRateBps = &v }},
		{"bad evidence url", func(r *dto.CreateLedgerEntryRequest) { r.EvidenceURLs = []string{"not a url"} }},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.validRequest()
			tc.mutate(&req)
			_, err := s.service.RecordEntry(s.ctx, adminActor, s.groupID, req)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.ledgerRepo.AssertNotCalled(s.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestRecordEntry_UnknownMember() {
	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.RecordEntry(s.ctx, adminActor, s.groupID, s.validRequest())

	s.ErrorIs(err, services.ErrMemberNotInGroup)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestRecordEntry_AuditFailureFailsOperation() {
	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(&domain.Membership{}, nil).Once()
	s.ledgerRepo.On("AppendEntry", s.ctx, mock.Anything).Return("entry-1", nil).Once()
	s.membershipRepo.On("AdjustBalance", s.ctx, s.groupID, "member-1", int64(500000), fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, mock.Anything).Return(apperrors.NewUnavailableError("store down", errors.New("boom"))).Once()

	entry, err := s.service.RecordEntry(s.ctx, adminActor, s.groupID, s.validRequest())

	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrUnavailable)
}

func (s *LedgerServiceTestSuite) TestUpdateEntryStatus_Success() {
	req := dto.UpdateEntryStatusRequest{Status: domain.EntryVerified}
	s.ledgerRepo.On("UpdateStatus", s.ctx, s.groupID, "entry-1", domain.EntryRecorded, domain.EntryVerified, adminActor.UserID, fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionLedgerEntryStatusUpdated && e.Details["from"] == "recorded" && e.Details["to"] == "verified"
	})).Return(nil).Once()
	s.ledgerRepo.On("FindEntryByID", s.ctx, s.groupID, "entry-1").Return(&domain.LedgerEntry{LedgerEntryID: "entry-1", Status: domain.EntryVerified}, nil).Once()

	entry, err := s.service.UpdateEntryStatus(s.ctx, adminActor, s.groupID, "entry-1", req)

	s.Require().NoError(err)
	s.Equal(domain.EntryVerified, entry.Status)
	s.ledgerRepo.AssertExpectations(s.T())
	s.membershipRepo.AssertNotCalled(s.T(), "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestUpdateEntryStatus_RejectionRevertsCachedBalance() {
	req := dto.UpdateEntryStatusRequest{Status: domain.EntryRejected}
	s.ledgerRepo.On("UpdateStatus", s.ctx, s.groupID, "entry-1", domain.EntryRecorded, domain.EntryRejected, adminActor.UserID, fixedNow).Return(nil).Once()
	s.auditRepo.On("AppendAuditLog", s.ctx, auditAction(domain.ActionLedgerEntryStatusUpdated)).Return(nil).Once()
	s.ledgerRepo.On("FindEntryByID", s.ctx, s.groupID, "entry-1").Return(&domain.LedgerEntry{
		LedgerEntryID: "entry-1", MemberID: "member-1", Type: domain.Repayment, AmountMinorUnits: 2500, Status: domain.EntryRejected,
	}, nil).Once()
	s.membershipRepo.On("AdjustBalance", s.ctx, s.groupID, "member-1", int64(2500), fixedNow).Return(nil).Once()

	entry, err := s.service.UpdateEntryStatus(s.ctx, adminActor, s.groupID, "entry-1", req)

	s.Require().NoError(err)
	s.Equal(domain.EntryRejected, entry.Status)
	s.membershipRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestUpdateEntryStatus_AlreadyReviewed() {
	req := dto.UpdateEntryStatusRequest{Status: domain.EntryRejected}
	s.ledgerRepo.On("UpdateStatus", s.ctx, s.groupID, "entry-1", domain.EntryRecorded, domain.EntryRejected, adminActor.UserID, fixedNow).Return(apperrors.ErrConflict).Once()

	_, err := s.service.UpdateEntryStatus(s.ctx, adminActor, s.groupID, "entry-1", req)

	s.ErrorIs(err, services.ErrInvalidStatusTransition)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.auditRepo.AssertNotCalled(s.T(), "AppendAuditLog", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestUpdateEntryStatus_NotFound() {
	req := dto.UpdateEntryStatusRequest{Status: domain.EntryVerified}
	s.ledgerRepo.On("UpdateStatus", s.ctx, s.groupID, "missing", domain.EntryRecorded, domain.EntryVerified, adminActor.UserID, fixedNow).Return(apperrors.ErrNotFound).Once()

	_, err := s.service.UpdateEntryStatus(s.ctx, adminActor, s.groupID, "missing", req)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestUpdateEntryStatus_BackToRecordedRejected() {
	_, err := s.service.UpdateEntryStatus(s.ctx, adminActor, s.groupID, "entry-1", dto.UpdateEntryStatusRequest{Status: domain.EntryRecorded})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestGetMemberBalance_SelfAllowed() {
	entries := []domain.LedgerEntry{
		{MemberID: "member-1", Type: domain.Disbursement, AmountMinorUnits: 10000, Status: domain.EntryVerified, OccurredAt: fixedNow},
		{MemberID: "member-1", Type: domain.Repayment, AmountMinorUnits: 2500, Status: domain.EntryRecorded, OccurredAt: fixedNow},
		{MemberID: "member-1", Type: domain.Repayment, AmountMinorUnits: 7000, Status: domain.EntryRejected, OccurredAt: fixedNow},
	}
	s.ledgerRepo.On("ListByMember", s.ctx, s.groupID, "member-1").Return(entries, nil).Once()
	s.membershipRepo.On("FindMembership", s.ctx, s.groupID, "member-1").Return(&domain.Membership{UserID: "member-1"}, nil).Once()

	balance, err := s.service.GetMemberBalance(s.ctx, memberActor, s.groupID, "member-1")

	s.Require().NoError(err)
	s.Equal(int64(7500), balance.OutstandingMinorUnits)
	s.Equal(int64(10000), balance.DisbursedMinorUnits)
	s.Equal(int64(2500), balance.RepaidMinorUnits)
}

func (s *LedgerServiceTestSuite) TestListMemberEntries_SelfOutsideGroupForbidden() {
	s.membershipRepo.On("FindMembership", s.ctx, "other-group", "member-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListMemberEntries(s.ctx, memberActor, "other-group", "member-1")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.ledgerRepo.AssertNotCalled(s.T(), "ListByMember", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetMemberBalance_OtherMemberForbidden() {
	_, err := s.service.GetMemberBalance(s.ctx, memberActor, s.groupID, "member-2")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.ledgerRepo.AssertNotCalled(s.T(), "ListByMember", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetGroupBalances_SortedByOutstanding() {
	entries := []domain.LedgerEntry{
		{MemberID: "a", Type: domain.Disbursement, AmountMinorUnits: 100, Status: domain.EntryVerified, OccurredAt: fixedNow},
		{MemberID: "b", Type: domain.Disbursement, AmountMinorUnits: 900, Status: domain.EntryVerified, OccurredAt: fixedNow},
	}
	s.ledgerRepo.On("ListByGroup", s.ctx, s.groupID).Return(entries, nil).Once()

	balances, err := s.service.GetGroupBalances(s.ctx, adminActor, s.groupID)

	s.Require().NoError(err)
	s.Require().Len(balances, 2)
	s.Equal("b", balances[0].MemberID)
	s.Equal("a", balances[1].MemberID)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestLedgerService_StoreErrorsPropagate(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	svc := services.NewLedgerService(services.BaseService{
		Authorizer: services.NewRoleAuthorizer(),
		TxManager:  &MockTxManager{},
		AuditRepo:  new(MockAuditRepository),
	}, ledgerRepo, new(MockMembershipRepository))

	storeErr := apperrors.NewUnavailableError("query timed out", context.DeadlineExceeded)
	ledgerRepo.On("ListByGroup", mock.Anything, "g").Return(nil, storeErr).Once()

	_, err := svc.ListGroupEntries(context.Background(), adminActor, "g")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
