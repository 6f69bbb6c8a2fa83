package commands

import (
	"context"
)

type ClearNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewClearNotificationsCommandHandler(uowFactory NotificationUoWFactory) ClearNotificationsCommandHandler {
	return ClearNotificationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of deleted notifications. Clearing an empty inbox is not an error.
func (h ClearNotificationsCommandHandler) Handle(ctx context.Context, cmd ClearNotificationsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.NotificationRepository().DeleteAllForRecipient(ctx, cmd.RecipientID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
