package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler closes a delivery when the assigned courier
// presents the right code. A wrong code is a validation error and leaves the
// order untouched. The code is accepted from ASSIGNED, IN_DELIVERY or
// DELIVERED, so DELIVERED may never be observed for that order.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	// An unassigned order falls through to the status check and conflicts.
	if o.Courier() != nil && !o.IsAssignedTo(cmd.CourierID()) {
		return errs.NewAccessDeniedError(
			fmt.Sprintf("order %s is not assigned to livreur %s", o.ID(), cmd.CourierID()))
	}

	expected := o.Status()
	if err = o.CompleteWithCode(cmd.DeliveryCode(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
