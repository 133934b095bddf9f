package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// MembershipReader defines read operations for group rosters.
type MembershipReader interface {
	// ListMemberships returns every membership of a group, ordered by user ID.
	ListMemberships(ctx context.Context, groupID string) ([]domain.Membership, error)

	// FindMembership retrieves one membership.
	FindMembership(ctx context.Context, groupID, userID string) (*domain.Membership, error)
}

// MembershipWriter defines write operations for group rosters.
type MembershipWriter interface {
	// SaveMembership inserts a membership; apperrors.ErrDuplicate if it exists.
	SaveMembership(ctx context.Context, membership domain.Membership) error

	// ApplyBalanceUpdates compare-and-sets every balance. If any membership no longer
	// holds its OldBalance the call fails with apperrors.ErrConflict; callers run it
	// inside a transaction so that no update survives.
	ApplyBalanceUpdates(ctx context.Context, groupID string, updates []domain.BalanceUpdate, now time.Time) error

	// AdjustBalance adds delta to the cached balance of one membership.
	// apperrors.ErrNotFound if the membership does not exist.
	AdjustBalance(ctx context.Context, groupID, userID string, delta int64, now time.Time) error
}

// MembershipRepositoryFacade combines all membership repository interfaces.
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}

// PushTokenRepository stores device tokens for push delivery.
type PushTokenRepository interface {
	// UpsertPushToken registers or replaces the token of a user.
	UpsertPushToken(ctx context.Context, token domain.PushToken) error

	// FindPushTokens returns the token of each user that has one, keyed by user ID.
	FindPushTokens(ctx context.Context, userIDs []string) (map[string]string, error)
}
