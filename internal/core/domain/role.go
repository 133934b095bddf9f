package domain

import (
	"fmt"
	"strings"
)

// Role is a caller's privilege level. Roles are totally ordered: member < admin < dev.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleDev    Role = "dev"
)

var roleRanks = map[Role]int{
	RoleMember: 0,
	RoleAdmin:  1,
	RoleDev:    2,
}

// Rank returns the position of r in the hierarchy and whether r is a known role.
func (r Role) Rank() (int, bool) {
	rank, ok := roleRanks[r]
	return rank, ok
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Satisfies reports whether r meets the minimum role. Unknown roles satisfy nothing.
func (r Role) Satisfies(minimum Role) bool {
	have, ok := r.Rank()
	if !ok {
		return false
	}
	need, ok := minimum.Rank()
	if !ok {
		return false
	}
	return have >= need
}

// ParseRole converts a claim value into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
