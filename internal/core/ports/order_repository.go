// Package ports defines the contracts between the dispatch core and its
// infrastructure: persistence of orders, users and notifications, the unit of
// work that commits them, and the live event fan-out.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderFilter narrows List. Empty fields do not filter.
type OrderFilter struct {
	Statuses  []order.Status
	CourierID *kernel.UUID
	ClientID  *kernel.UUID
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored status still equals
	// expected. When another writer moved the order first, it returns an
	// errs.ConflictError and nothing is written.
	//
	// Example:
	//   expected := o.Status()
	//   if err := o.Assign(courierID, adminID, now); err != nil {
	//       return err
	//   }
	//   if err := repo.Update(ctx, o, expected); err != nil {
	//       return err // loser of a concurrent assignment ends up here
	//   }
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// UpdateLocation overwrites the courier position only. Last writer wins.
	UpdateLocation(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns matching orders, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
