package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// DomainEvent is recorded by the Order aggregate on every transition and
// dispatched once the transition has been committed.
type DomainEvent interface {
	AggregateID() kernel.UUID
	EventName() string
}

// CreatedEvent: a new PENDING order exists.
type CreatedEvent struct {
	OrderID         kernel.UUID
	ClientID        *kernel.UUID
	Description     string
	DeliveryAddress string
	ReceiverPhone   string
	CreatedAt       time.Time
}

func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) EventName() string        { return "order.created" }

// AssignedEvent: a courier was bound, by an admin or by self-accept.
type AssignedEvent struct {
	OrderID         kernel.UUID
	ClientID        *kernel.UUID
	CourierID       kernel.UUID
	ActorID         kernel.UUID
	SelfAccepted    bool
	Description     string
	DeliveryAddress string
	ReceiverPhone   string
	Location        kernel.GeoPoint
	AssignedAt      time.Time
}

func (e AssignedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e AssignedEvent) EventName() string        { return "order.assigned" }

// StatusAdvancedEvent: the courier moved the order to IN_DELIVERY or DELIVERED.
type StatusAdvancedEvent struct {
	OrderID   kernel.UUID
	ClientID  *kernel.UUID
	CourierID kernel.UUID
	Status    Status
	At        time.Time
}

func (e StatusAdvancedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusAdvancedEvent) EventName() string        { return "order.status_advanced" }

// CompletedEvent: the courier presented the right delivery code.
type CompletedEvent struct {
	OrderID     kernel.UUID
	ClientID    *kernel.UUID
	CourierID   kernel.UUID
	DeliveredAt time.Time
}

func (e CompletedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CompletedEvent) EventName() string        { return "order.completed" }

// ReceiptConfirmedEvent: the owning client confirmed reception.
type ReceiptConfirmedEvent struct {
	OrderID   kernel.UUID
	ClientID  kernel.UUID
	CourierID kernel.UUID
}

func (e ReceiptConfirmedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e ReceiptConfirmedEvent) EventName() string        { return "order.receipt_confirmed" }
