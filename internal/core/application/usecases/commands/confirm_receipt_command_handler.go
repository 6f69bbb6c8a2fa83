package commands

import (
	"context"
)

// ConfirmReceiptCommandHandler moves a DELIVERED order to RECEIVED on behalf of
// its client. Confirming twice conflicts the second time.
type ConfirmReceiptCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmReceiptCommandHandler(uowFactory OrderUoWFactory) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) error {
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

	expected := o.Status()
	if err = o.ConfirmReceipt(cmd.ClientID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
