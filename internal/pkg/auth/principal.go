// Package auth issues and verifies the signed tokens that identify a caller.
// Account management lives elsewhere; dispatch only trusts a verified token.
package auth

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// Principal is the authenticated caller of a request or websocket session.
type Principal struct {
	UserID kernel.UUID
	Role   user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

func (p Principal) IsCourier() bool {
	return p.Role == user.RoleCourier
}

func (p Principal) IsClient() bool {
	return p.Role == user.RoleClient
}
