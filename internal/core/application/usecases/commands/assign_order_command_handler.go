package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// AssignOrderCommandHandler binds an eligible courier to a PENDING order on an
// admin's behalf.
//
// An unknown or ineligible courier is a validation error and is reported
// before the order is looked up. If two admins race on the same order, the
// one whose write lands second gets an errs.ConflictError and nothing is
// notified for it.
//
// Example:
//
//	cmd, _ := NewAssignOrderCommand(orderID, courierID, adminID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrValueIsInvalid):
//	    // courier missing or not verified
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // order missing
//	case errors.Is(err, errs.ErrConflict):
//	    // order is no longer PENDING
//	}
type AssignOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     services.AssignmentPolicy
}

func NewAssignOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	policy services.AssignmentPolicy,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.ErrCourierIsNotEligible
	}
	if err != nil {
		return err
	}
	if !h.policy.CanAssign(courier) {
		return services.ErrCourierIsNotEligible
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = h.policy.Assign(o, courier, cmd.AdminID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
