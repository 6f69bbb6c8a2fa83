package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryLocationCommandHandler records a courier's position and, when
// a different status is reported, advances the order.
//
// A location-only update (no status, or the current status repeated) is
// written without a status condition: the last fix received wins. A status
// change is a compare-and-set on the status read in this transaction, and the
// new position is written with it.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateDeliveryLocationCommandHandler(uowFactory OrderUoWFactory) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDeliveryLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.IsAssignedTo(cmd.CourierID()) {
		return errs.NewAccessDeniedError(
			fmt.Sprintf("order %s is not assigned to livreur %s", o.ID(), cmd.CourierID()))
	}

	if err = o.MoveTo(cmd.Location()); err != nil {
		return err
	}

	status := cmd.Status()
	if status == nil || *status == o.Status() {
		if err = orderRepo.UpdateLocation(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	expected := o.Status()
	now := time.Now().UTC()
	switch *status {
	case order.InDelivery:
		err = o.PickUp(now)
	case order.Delivered:
		err = o.Deliver(now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
