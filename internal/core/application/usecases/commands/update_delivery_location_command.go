package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
)

// UpdateDeliveryLocationCommand carries a courier's position fix and, optionally,
// the status it reports alongside it. Only IN_DELIVERY and DELIVERED can be reported.
type UpdateDeliveryLocationCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint
	status    *order.Status

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryLocationCommand(
	orderID, courierID kernel.UUID,
	location kernel.GeoPoint,
	status *order.Status,
) (UpdateDeliveryLocationCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := courierID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if location.Validate() != nil {
		errList = append(errList, errs.NewValueIsRequiredError("latitude and longitude"))
	}
	if status != nil && *status != order.InDelivery && *status != order.Delivered {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s cannot be reported with a location update", *status)))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	cmd := UpdateDeliveryLocationCommand{
		orderID:   orderID,
		courierID: courierID,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}
	if status != nil {
		s := *status
		cmd.status = &s
	}
	return cmd, nil
}

func (c UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

func (c UpdateDeliveryLocationCommand) OrderID() kernel.UUID      { return c.orderID }
func (c UpdateDeliveryLocationCommand) CourierID() kernel.UUID    { return c.courierID }
func (c UpdateDeliveryLocationCommand) Location() kernel.GeoPoint { return c.location }

// Status is nil for a location-only update.
func (c UpdateDeliveryLocationCommand) Status() *order.Status {
	return c.status
}
