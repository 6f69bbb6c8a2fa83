package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"

	"gorm.io/gorm"
)

type GetAdminStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetAdminStatsQueryHandler(db *gorm.DB) GetAdminStatsQueryHandler {
	return GetAdminStatsQueryHandler{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (h GetAdminStatsQueryHandler) Handle(ctx context.Context, query GetAdminStatsQuery) (AdminStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return AdminStatsResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp := AdminStatsResponse{
		UsersByRole:    make(map[string]int64),
		OrdersByStatus: make(map[string]int64),
	}
	for _, r := range user.AllRoles() {
		resp.UsersByRole[r.String()] = 0
	}
	for _, s := range order.AllStatuses() {
		resp.OrdersByStatus[s.String()] = 0
	}

	var users []groupCount
	if err := db.Raw(`SELECT role AS key, COUNT(*) AS count FROM users GROUP BY role`).Scan(&users).Error; err != nil {
		return AdminStatsResponse{}, err
	}
	for _, g := range users {
		resp.UsersByRole[g.Key] = g.Count
	}

	err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE is_verified),
			COUNT(*) FILTER (WHERE is_verified AND is_active)
		FROM users
		WHERE role = ?
	`, user.RoleCourier.String()).Row().Scan(&resp.VerifiedCouriers, &resp.ActiveCouriers)
	if err != nil {
		return AdminStatsResponse{}, err
	}

	var orders []groupCount
	if err = db.Raw(`SELECT status AS key, COUNT(*) AS count FROM orders GROUP BY status`).Scan(&orders).Error; err != nil {
		return AdminStatsResponse{}, err
	}
	for _, g := range orders {
		resp.OrdersByStatus[g.Key] = g.Count
		resp.TotalOrders += g.Count
	}

	return resp, nil
}
