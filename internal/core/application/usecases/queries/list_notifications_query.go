package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

type ListNotificationsQuery struct {
	recipientID kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery caps the result at limit, or at
// notification.DefaultListLimit when limit <= 0.
func NewListNotificationsQuery(recipientID kernel.UUID, limit int) (ListNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	if limit <= 0 {
		limit = notification.DefaultListLimit
	}
	return ListNotificationsQuery{
		recipientID: recipientID,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) RecipientID() kernel.UUID { return q.recipientID }
func (q ListNotificationsQuery) Limit() int               { return q.limit }

type NotificationResponse struct {
	ID        kernel.UUID
	SenderID  *kernel.UUID
	Type      notification.Type
	Message   string
	RelatedID *kernel.UUID
	IsRead    bool
	CreatedAt time.Time
}

// ListNotificationsResponse carries the newest notifications and the unread
// count over the whole inbox, not just the returned page.
type ListNotificationsResponse struct {
	Items       []NotificationResponse
	UnreadCount int64
}
