package services

import (
	"fmt"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
)

type roleAuthorizer struct{}

// NewRoleAuthorizer creates the role hierarchy checker.
func NewRoleAuthorizer() portssvc.RoleAuthorizerSvc {
	return roleAuthorizer{}
}

var _ portssvc.RoleAuthorizerSvc = roleAuthorizer{}

// RequireRole accepts the actor if its role ranks at or above any of minimums.
// With no minimums every recognised role is accepted.
func (roleAuthorizer) RequireRole(actor domain.Actor, minimums ...domain.Role) (domain.Role, error) {
	if actor.UserID == "" || !actor.Role.IsValid() {
		return "", fmt.Errorf("%w: missing or unrecognised role", apperrors.ErrUnauthenticated)
	}
	if len(minimums) == 0 {
		return actor.Role, nil
	}
	for _, m := range minimums {
		if actor.Role.Satisfies(m) {
			return actor.Role, nil
		}
	}
	return "", fmt.Errorf("%w: role %s is insufficient", apperrors.ErrForbidden, actor.Role)
}
