package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyCourierCommandIsNotConstructed = errors.New(
	"VerifyCourierCommand must be created via NewVerifyCourierCommand constructor",
)

type VerifyCourierCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewVerifyCourierCommand(userID kernel.UUID) (VerifyCourierCommand, error) {
	if err := userID.Validate(); err != nil {
		return VerifyCourierCommand{}, err
	}

	return VerifyCourierCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyCourierCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCourierCommandIsNotConstructed)
}

func (c VerifyCourierCommand) UserID() kernel.UUID {
	return c.userID
}
