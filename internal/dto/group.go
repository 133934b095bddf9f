package dto

import (
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// --- Group roster DTOs ---

// AddMemberRequest places an existing user in the group's roster.
type AddMemberRequest struct {
	UserID      string      `json:"userID" binding:"required,max=128"`
	DisplayName string      `json:"displayName" binding:"required,max=200"`
	Role        domain.Role `json:"role" binding:"omitempty,oneof=member admin"`
}

// ListMembersResponse wraps a roster.
type ListMembersResponse struct {
	Members []domain.Membership `json:"members"`
}

// ListNotificationsResponse wraps recent notifications.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// ListAnnouncementsResponse wraps the group board.
type ListAnnouncementsResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
}

// ListAuditLogsParams pages through the audit trail.
type ListAuditLogsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListAuditLogsResponse wraps one page of audit entries.
type ListAuditLogsResponse struct {
	AuditLogs []domain.AuditLogEntry `json:"auditLogs"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListParams is the shared limit query parameter of listing endpoints.
type ListParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
