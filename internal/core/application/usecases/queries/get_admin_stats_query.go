package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetAdminStatsQueryIsNotConstructed = errors.New(
	"GetAdminStatsQuery must be created via NewGetAdminStatsQuery constructor",
)

type GetAdminStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAdminStatsQuery() GetAdminStatsQuery {
	return GetAdminStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAdminStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminStatsQueryIsNotConstructed)
}

// AdminStatsResponse summarises the user directory and the order book. Every
// role and status is present in the maps, with zero when nothing matches.
type AdminStatsResponse struct {
	UsersByRole      map[string]int64
	VerifiedCouriers int64
	ActiveCouriers   int64
	OrdersByStatus   map[string]int64
	TotalOrders      int64
}
