package commands

import (
	"context"
)

// VerifyCourierCommandHandler marks a courier account as verified, which makes
// it eligible for admin assignment.
type VerifyCourierCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewVerifyCourierCommandHandler(uowFactory UserUoWFactory) VerifyCourierCommandHandler {
	return VerifyCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h VerifyCourierCommandHandler) Handle(ctx context.Context, cmd VerifyCourierCommand) error {
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

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if u.IsVerified() {
		return nil
	}

	if err = u.Verify(); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
