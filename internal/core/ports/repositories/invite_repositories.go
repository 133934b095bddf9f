package repositories

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// InviteRepository stores invite codes and their issuance counters.
type InviteRepository interface {
	// SaveInviteCode inserts a code; apperrors.ErrDuplicate on code collision.
	SaveInviteCode(ctx context.Context, code domain.InviteCode) error

	// FindInviteCode returns apperrors.ErrNotFound for unknown codes.
	FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error)

	// ReserveDailyIssue atomically increments the counter for (actor, group, day)
	// unless it already reached limit. It reports whether the slot was granted
	// and the counter value after the call.
	ReserveDailyIssue(ctx context.Context, actorID, groupID, day string, limit int) (bool, int, error)
}
