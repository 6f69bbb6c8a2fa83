package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// UserRepository is the dispatch core's view of the user directory.
type UserRepository interface {
	Add(ctx context.Context, u *user.User) error

	// Update writes the verification and activity flags.
	Update(ctx context.Context, u *user.User) error

	// Get returns errs.ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// ListByRole returns every account with the role, active or not.
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
