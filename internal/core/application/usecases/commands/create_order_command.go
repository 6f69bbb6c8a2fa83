package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDescriptionIsRequired      = errs.NewValueIsRequiredError("description")
	ErrDeliveryAddressIsRequired  = errs.NewValueIsRequiredError("deliveryAddress")
	ErrReceiverPhoneIsRequired    = errs.NewValueIsRequiredError("receiverPhone")
	ErrDeliveryLocationIsRequired = errs.NewValueIsRequiredError("deliveryLocation")
)

// CreateOrderCommand places a new PENDING order. clientID is nil when the
// request carried no authenticated client.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, &clientID, order.Details{
//	    Description:     "2 boxes",
//	    DeliveryAddress: "12 rue de la Paix",
//	    ReceiverPhone:   "+33600000000",
//	}, kernel.NewGeoPoint(48.86, 2.33))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID *kernel.UUID
	details  order.Details
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID *kernel.UUID,
	details order.Details,
	location kernel.GeoPoint,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setDetails(details),
		cmd.setLocation(location),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ClientID() *kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	id := *clientID
	c.clientID = &id
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	var errList []error
	if strings.TrimSpace(details.Description) == "" {
		errList = append(errList, ErrDescriptionIsRequired)
	}
	if strings.TrimSpace(details.DeliveryAddress) == "" {
		errList = append(errList, ErrDeliveryAddressIsRequired)
	}
	if strings.TrimSpace(details.ReceiverPhone) == "" {
		errList = append(errList, ErrReceiverPhoneIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	c.details = details
	return nil
}

func (c *CreateOrderCommand) setLocation(location kernel.GeoPoint) error {
	if location.Validate() != nil {
		return ErrDeliveryLocationIsRequired
	}
	c.location = location
	return nil
}
