package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrDeliveryCodeIsRequired = errs.NewValueIsRequiredError("deliveryCode")
)

// CompleteDeliveryCommand is the courier presenting the receiver's delivery code.
type CompleteDeliveryCommand struct {
	orderID      kernel.UUID
	courierID    kernel.UUID
	deliveryCode string

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(orderID, courierID kernel.UUID, deliveryCode string) (CompleteDeliveryCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := courierID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(deliveryCode) == "" {
		errList = append(errList, ErrDeliveryCodeIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		orderID:      orderID,
		courierID:    courierID,
		deliveryCode: deliveryCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CompleteDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
func (c CompleteDeliveryCommand) DeliveryCode() string   { return c.deliveryCode }
