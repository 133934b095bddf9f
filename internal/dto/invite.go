package dto

import (
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// --- Invite DTOs ---

// ValidateInviteCodeRequest carries the code typed by a prospective member.
type ValidateInviteCodeRequest struct {
	Code string `json:"code" binding:"required,len=8,hexadecimal"`
}

// InviteCodeResponse is returned when a code is issued.
type InviteCodeResponse struct {
	InviteCode string    `json:"inviteCode"`
	GroupID    string    `json:"groupID"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ToInviteCodeResponse converts domain.InviteCode to DTO.
func ToInviteCodeResponse(c *domain.InviteCode) InviteCodeResponse {
	return InviteCodeResponse{
		InviteCode: c.Code,
		GroupID:    c.GroupID,
		ExpiresAt:  c.ExpiresAt,
	}
}

// ValidateInviteCodeResponse is returned for a usable code.
type ValidateInviteCodeResponse struct {
	Valid     bool      `json:"valid"`
	GroupID   string    `json:"groupID"`
	ExpiresAt time.Time `json:"expiresAt"`
}
