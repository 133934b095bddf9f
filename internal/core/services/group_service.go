package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/utils/pagination"
)

const maxAuditLogsPage = 500

// groupService handles the roster of a lending circle and its audit trail.
type groupService struct {
	BaseService
	membershipRepo portsrepo.MembershipRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(base BaseService, membershipRepo portsrepo.MembershipRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{
		BaseService:    base,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// AddMember places an existing user in the group with a zero balance.
func (s *groupService) AddMember(ctx context.Context, actor domain.Actor, groupID string, req dto.AddMemberRequest) (*domain.Membership, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}

	now := s.now()
	membership := domain.Membership{
		GroupID:       groupID,
		UserID:        req.UserID,
		Role:          role,
		DisplayName:   req.DisplayName,
		JoinedAt:      now,
		LastUpdatedAt: now,
	}

	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
			return err
		}
		return audit.Record(ctx, groupID, domain.ActionMemberAdded, map[string]any{
			"userId":      membership.UserID,
			"role":        string(membership.Role),
			"displayName": membership.DisplayName,
		})
	})
	if err != nil {
		logger.Warn("Failed to add member", slog.String("error", err.Error()), slog.String("group_id", groupID), slog.String("member_id", req.UserID))
		return nil, err
	}

	logger.Info("Member added to group", slog.String("group_id", groupID), slog.String("member_id", membership.UserID), slog.String("role", string(role)))
	return &membership, nil
}

// ListMembers returns the roster of a group.
func (s *groupService) ListMembers(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Membership, error) {
	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.ListMemberships(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.String("group_id", groupID))
		return nil, err
	}
	return members, nil
}

// ListAuditLogs returns one page of the group's audit trail, newest first.
func (s *groupService) ListAuditLogs(ctx context.Context, actor domain.Actor, groupID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var beforeID *string
	if params.NextToken != nil && *params.NextToken != "" {
		id, err := pagination.DecodeIDToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		beforeID = &id
	}
	limit := pagination.NormalizeLimit(params.Limit, maxAuditLogsPage)

	// One extra row tells whether another page exists.
	entries, err := s.AuditRepo.ListAuditLogs(ctx, groupID, beforeID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs", slog.String("group_id", groupID))
		return nil, err
	}

	resp := &dto.ListAuditLogsResponse{AuditLogs: entries}
	if len(entries) > limit {
		resp.AuditLogs = entries[:limit]
		token := pagination.EncodeIDToken(resp.AuditLogs[limit-1].AuditLogID)
		resp.NextToken = &token
	}
	if resp.AuditLogs == nil {
		resp.AuditLogs = []domain.AuditLogEntry{}
	}
	return resp, nil
}
