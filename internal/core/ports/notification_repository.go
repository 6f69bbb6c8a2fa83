package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// ListForRecipient returns the most recent first. limit <= 0 means
	// notification.DefaultListLimit.
	ListForRecipient(ctx context.Context, recipientID kernel.UUID, limit int) ([]*notification.Notification, error)

	// MarkRead returns errs.ObjectNotFoundError when id is unknown.
	MarkRead(ctx context.Context, id kernel.UUID) error

	// MarkReadForRecipient behaves like MarkRead but treats a notification
	// addressed to someone else as not found.
	MarkReadForRecipient(ctx context.Context, id, recipientID kernel.UUID) error

	// DeleteAllForRecipient returns the number of deleted rows.
	DeleteAllForRecipient(ctx context.Context, recipientID kernel.UUID) (int64, error)
}
