package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrListCouriersQueryIsNotConstructed = errors.New(
		"ListCouriersQuery must be created via NewListCouriersQuery constructor",
	)
)

// ListCouriersQuery returns courier accounts for the admin console, optionally
// restricted to verified (or unverified) couriers.
//
// Example:
//
//	verified := false
//	query := NewListCouriersQuery(&verified)
//	pending, err := NewListCouriersQueryHandler(db).Handle(ctx, query)
type ListCouriersQuery struct {
	verified *bool
	guard    guard.ConstructorGuard
}

// NewListCouriersQuery builds the query. A nil verified keeps every courier.
func NewListCouriersQuery(verified *bool) ListCouriersQuery {
	q := ListCouriersQuery{guard: guard.NewConstructorGuard()}
	if verified != nil {
		v := *verified
		q.verified = &v
	}
	return q
}

func (q ListCouriersQuery) Verified() *bool {
	return q.verified
}

func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

// CourierResponse is a courier account with its current workload.
// ActiveOrders counts orders bound to the courier that are not yet delivered.
type CourierResponse struct {
	ID           kernel.UUID
	FullName     string
	Email        string
	Phone        string
	IsVerified   bool
	IsActive     bool
	ActiveOrders int64
}
