package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList*Query constructors",
)

// ListOrdersQuery selects orders by status, courier and client. Empty criteria
// do not filter. Results are newest first.
//
// The constructors cover the listing endpoints:
//
//	NewListOrdersQuery("active")                      // public list
//	NewListAdminOrdersQuery("assigned", &courierID)   // admin list
//	NewListAvailableOrdersQuery()                     // PENDING, for couriers
//	NewListCourierDeliveriesQuery(courierID, "")      // a courier's orders
//	NewDeliveryHistoryQuery(courierID, "")            // DELIVERED and RECEIVED by default
type ListOrdersQuery struct {
	statuses  []order.Status
	courierID *kernel.UUID
	clientID  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(status string) (ListOrdersQuery, error) {
	statuses, err := ParseStatusFilter(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewListAdminOrdersQuery adds an optional courier filter to NewListOrdersQuery.
func NewListAdminOrdersQuery(status string, courierID *kernel.UUID) (ListOrdersQuery, error) {
	q, err := NewListOrdersQuery(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	if courierID != nil {
		if err = courierID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		id := *courierID
		q.courierID = &id
	}
	return q, nil
}

func NewListAvailableOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{
		statuses: []order.Status{order.Pending},
		guard:    guard.NewConstructorGuard(),
	}
}

// NewListCourierDeliveriesQuery lists the orders bound to courierID. status
// accepts a comma-separated list; empty means every status.
func NewListCourierDeliveriesQuery(courierID kernel.UUID, status string) (ListOrdersQuery, error) {
	return NewListAdminOrdersQuery(status, &courierID)
}

func NewDeliveryHistoryQuery(courierID kernel.UUID, status string) (ListOrdersQuery, error) {
	q, err := NewListCourierDeliveriesQuery(courierID, status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	if len(q.statuses) == 0 {
		q.statuses = []order.Status{order.Delivered, order.Received}
	}
	return q, nil
}

// NewListClientOrdersQuery lists the orders placed by clientID.
func NewListClientOrdersQuery(clientID kernel.UUID, status string) (ListOrdersQuery, error) {
	if err := clientID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	q, err := NewListOrdersQuery(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	q.clientID = &clientID
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Statuses() []order.Status { return q.statuses }
func (q ListOrdersQuery) CourierID() *kernel.UUID  { return q.courierID }
func (q ListOrdersQuery) ClientID() *kernel.UUID   { return q.clientID }
