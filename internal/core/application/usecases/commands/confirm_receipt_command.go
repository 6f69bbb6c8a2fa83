package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand is the owning client acknowledging a DELIVERED order.
type ConfirmReceiptCommand struct {
	orderID  kernel.UUID
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmReceiptCommand(orderID, clientID kernel.UUID) (ConfirmReceiptCommand, error) {
	if err := errors.Join(orderID.Validate(), clientID.Validate()); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	return ConfirmReceiptCommand{
		orderID:  orderID,
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

func (c ConfirmReceiptCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmReceiptCommand) ClientID() kernel.UUID {
	return c.clientID
}
