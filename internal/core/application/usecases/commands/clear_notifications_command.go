package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClearNotificationsCommandIsNotConstructed = errors.New(
	"ClearNotificationsCommand must be created via NewClearNotificationsCommand constructor",
)

// ClearNotificationsCommand deletes every notification addressed to recipientID.
type ClearNotificationsCommand struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearNotificationsCommand(recipientID kernel.UUID) (ClearNotificationsCommand, error) {
	if err := recipientID.Validate(); err != nil {
		return ClearNotificationsCommand{}, err
	}

	return ClearNotificationsCommand{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ClearNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrClearNotificationsCommandIsNotConstructed)
}

func (c ClearNotificationsCommand) RecipientID() kernel.UUID {
	return c.recipientID
}
