package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Channel addresses live connections: one user's sessions or every admin session.
type Channel struct {
	admin  bool
	userID kernel.UUID
}

func UserChannel(id kernel.UUID) Channel {
	return Channel{userID: id}
}

func AdminChannel() Channel {
	return Channel{admin: true}
}

func (c Channel) IsAdmin() bool {
	return c.admin
}

// UserID is meaningful only when IsAdmin is false.
func (c Channel) UserID() kernel.UUID {
	return c.userID
}

func (c Channel) String() string {
	if c.admin {
		return "admin"
	}
	return "user:" + c.userID.String()
}

// EventPublisher pushes a live event to the connections currently in channel.
// Delivery is at-most-once; recipients that are offline miss it.
type EventPublisher interface {
	Publish(ctx context.Context, channel Channel, event string, payload any) error
}

// DomainEventDispatcher receives the events of aggregates whose transaction
// has committed. It must not fail the operation that produced them.
type DomainEventDispatcher interface {
	Dispatch(ctx context.Context, events []order.DomainEvent)
}
