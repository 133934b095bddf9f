package services

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// InviteSvcFacade issues and validates invite codes.
type InviteSvcFacade interface {
	// CreateInviteCode mints a code, subject to the per-actor daily limit.
	CreateInviteCode(ctx context.Context, actor domain.Actor, groupID string) (*domain.InviteCode, error)

	// ValidateInviteCode checks a code without consuming it.
	ValidateInviteCode(ctx context.Context, code string) (*domain.InviteValidation, error)
}
