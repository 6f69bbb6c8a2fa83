package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
)

// AcceptOrderCommandHandler lets an authenticated courier self-assign. Whether
// the courier must be verified first is the AssignmentPolicy's call.
type AcceptOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     services.AssignmentPolicy
}

func NewAcceptOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	policy services.AssignmentPolicy,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = h.policy.SelfAccept(o, courier, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
