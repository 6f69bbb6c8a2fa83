package commands

import (
	"context"
)

// MarkNotificationReadCommandHandler is idempotent: marking an already read
// notification succeeds. Someone else's notification is reported as not found.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
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

	err := uow.NotificationRepository().MarkReadForRecipient(ctx, cmd.NotificationID(), cmd.RecipientID())
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
