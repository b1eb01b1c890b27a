package auth

import (
	"court-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRole = errs.NewRule(errs.ErrValidation, "INVALID_ROLE", "invalid role")

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries every permission of min.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && roleRank[r] >= roleRank[min]
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole.With("%q", s)
	}
	return role, nil
}

// Principal is the authenticated caller as asserted by a bearer token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
