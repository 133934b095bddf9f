package services_test

import (
	"testing"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestRoleAuthorizer_RequireRole(t *testing.T) {
	authorizer := services.NewRoleAuthorizer()

	testCases := []struct {
		name     string
		role     domain.Role
		minimums []domain.Role
		wantErr  error
	}{
		{"dev satisfies admin", domain.RoleDev, []domain.Role{domain.RoleAdmin}, nil},
		{"admin satisfies admin", domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, nil},
		{"member below admin", domain.RoleMember, []domain.Role{domain.RoleAdmin}, apperrors.ErrForbidden},
		{"admin below dev", domain.RoleAdmin, []domain.Role{domain.RoleDev}, apperrors.ErrForbidden},
		{"any of several minimums", domain.RoleAdmin, []domain.Role{domain.RoleDev, domain.RoleAdmin}, nil},
		{"member satisfies member", domain.RoleMember, []domain.Role{domain.RoleMember}, nil},
		{"no minimums accepts known role", domain.RoleMember, nil, nil},
		{"missing role", "", []domain.Role{domain.RoleMember}, apperrors.ErrUnauthenticated},
		{"unknown role", "superuser", []domain.Role{domain.RoleMember}, apperrors.ErrUnauthenticated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := authorizer.RequireRole(domain.Actor{UserID: "u1", Role: tc.role}, tc.minimums...)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, role)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.role, role)
		})
	}
}

func TestRoleAuthorizer_MissingUser(t *testing.T) {
	_, err := services.NewRoleAuthorizer().RequireRole(domain.Actor{Role: domain.RoleDev}, domain.RoleMember)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
