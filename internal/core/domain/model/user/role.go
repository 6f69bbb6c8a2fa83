package user

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Role is stored and transmitted in its lower-case form.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleClient  Role = "client"
	RoleCourier Role = "livreur"
)

// ParseRole accepts "courier" as an alias of RoleCourier.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleClient):
		return RoleClient, nil
	case string(RoleCourier), "courier":
		return RoleCourier, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// AllRoles lists the canonical roles.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleClient, RoleCourier}
}

func (r Role) String() string {
	return string(r)
}

// Validate only accepts canonical values; aliases must go through ParseRole.
func (r Role) Validate() error {
	for _, known := range AllRoles() {
		if r == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
}
