package services

import (
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
)

// RoleAuthorizerSvc checks a caller's role against the role hierarchy.
type RoleAuthorizerSvc interface {
	// RequireRole returns the actor's role when it satisfies any of minimums.
	// It fails with apperrors.ErrUnauthenticated for a missing or unknown role
	// and apperrors.ErrForbidden for a known but insufficient one.
	RequireRole(actor domain.Actor, minimums ...domain.Role) (domain.Role, error)
}
