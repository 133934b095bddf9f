package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/core/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/SscSPs/kewat_ledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGroupFixture() (*MockMembershipRepository, *MockAuditRepository, *services.BaseService) {
	return new(MockMembershipRepository), new(MockAuditRepository), &services.BaseService{
		Authorizer: services.NewRoleAuthorizer(),
		TxManager:  &MockTxManager{},
		Clock:      func() time.Time { return fixedNow },
	}
}

func TestGroupService_AddMember(t *testing.T) {
	membershipRepo, auditRepo, base := newGroupFixture()
	base.AuditRepo = auditRepo
	svc := services.NewGroupService(*base, membershipRepo)
	ctx := context.Background()

	membershipRepo.On("SaveMembership", ctx, domain.Membership{
		GroupID:       "g1",
		UserID:        "u9",
		Role:          domain.RoleMember,
		DisplayName:   "Sita",
		JoinedAt:      fixedNow,
		LastUpdatedAt: fixedNow,
	}).Return(nil).Once()
	auditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionMemberAdded && e.Details["userId"] == "u9" && e.Details["role"] == "member"
	})).Return(nil).Once()

	membership, err := svc.AddMember(ctx, adminActor, "g1", dto.AddMemberRequest{UserID: "u9", DisplayName: "Sita"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, membership.Role)
	assert.Zero(t, membership.BalanceMinorUnits)
	membershipRepo.AssertExpectations(t)
}

func TestGroupService_AddMemberDuplicate(t *testing.T) {
	membershipRepo, auditRepo, base := newGroupFixture()
	base.AuditRepo = auditRepo
	svc := services.NewGroupService(*base, membershipRepo)

	membershipRepo.On("SaveMembership", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.AddMember(context.Background(), adminActor, "g1", dto.AddMemberRequest{UserID: "u9", DisplayName: "Sita", Role: domain.RoleAdmin})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	auditRepo.AssertNotCalled(t, "AppendAuditLog", mock.Anything, mock.Anything)
}

func TestGroupService_AddMemberRejectsDevRole(t *testing.T) {
	membershipRepo, auditRepo, base := newGroupFixture()
	base.AuditRepo = auditRepo
	svc := services.NewGroupService(*base, membershipRepo)

	_, err := svc.AddMember(context.Background(), devActor, "g1", dto.AddMemberRequest{UserID: "u9", DisplayName: "Sita", Role: domain.RoleDev})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGroupService_ListAuditLogsPages(t *testing.T) {
	membershipRepo, auditRepo, base := newGroupFixture()
	base.AuditRepo = auditRepo
	svc := services.NewGroupService(*base, membershipRepo)
	ctx := context.Background()

	entries := make([]domain.AuditLogEntry, 3)
	for i := range entries {
		entries[i] = domain.AuditLogEntry{AuditLogID: utils.NewID(fixedNow.Add(-time.Duration(i) * time.Minute)), Action: domain.ActionMemberAdded}
	}

	auditRepo.On("ListAuditLogs", ctx, "g1", (*string)(nil), 3).Return(entries, nil).Once()

	page, err := svc.ListAuditLogs(ctx, adminActor, "g1", dto.ListAuditLogsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.AuditLogs, 2)
	require.NotNil(t, page.NextToken)

	cursor, err := pagination.DecodeIDToken(*page.NextToken)
	require.NoError(t, err)
	assert.Equal(t, entries[1].AuditLogID, cursor)

	auditRepo.On("ListAuditLogs", ctx, "g1", &cursor, 3).Return(entries[2:], nil).Once()

	last, err := svc.ListAuditLogs(ctx, adminActor, "g1", dto.ListAuditLogsParams{Limit: 2, NextToken: page.NextToken})
	require.NoError(t, err)
	assert.Len(t, last.AuditLogs, 1)
	assert.Nil(t, last.NextToken)
}

func TestGroupService_ListAuditLogsBadToken(t *testing.T) {
	membershipRepo, auditRepo, base := newGroupFixture()
	base.AuditRepo = auditRepo
	svc := services.NewGroupService(*base, membershipRepo)

	bad := "%%%"
	_, err := svc.ListAuditLogs(context.Background(), adminActor, "g1", dto.ListAuditLogsParams{NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.ListAuditLogs(context.Background(), memberActor, "g1", dto.ListAuditLogsParams{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
