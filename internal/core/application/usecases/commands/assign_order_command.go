package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAssignOrderCommandIsNotConstructed = errors.New(
		"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
	)
	ErrCourierIDIsRequired = errs.NewValueIsRequiredError("livreurId")
)

// AssignOrderCommand is an admin binding a courier to a PENDING order.
type AssignOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	adminID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, courierID, adminID kernel.UUID) (AssignOrderCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if courierID.Validate() != nil {
		errList = append(errList, ErrCourierIDIsRequired)
	}
	if err := adminID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		adminID:   adminID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AssignOrderCommand) CourierID() kernel.UUID { return c.courierID }
func (c AssignOrderCommand) AdminID() kernel.UUID   { return c.adminID }
