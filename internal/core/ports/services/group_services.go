package services

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/dto"
)

// GroupMembershipSvc manages a group's roster.
type GroupMembershipSvc interface {
	AddMember(ctx context.Context, actor domain.Actor, groupID string, req dto.AddMemberRequest) (*domain.Membership, error)
	ListMembers(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Membership, error)
}

// AuditReaderSvc exposes the audit trail to admins.
type AuditReaderSvc interface {
	// ListAuditLogs pages backwards through the trail; nextToken is nil on the last page.
	ListAuditLogs(ctx context.Context, actor domain.Actor, groupID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}

// GroupSvcFacade combines all group-related service interfaces.
type GroupSvcFacade interface {
	GroupMembershipSvc
	AuditReaderSvc
}
