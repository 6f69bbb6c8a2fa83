package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCouriersQueryHandler reads courier accounts straight from the users table,
// sorted by name.
type ListCouriersQueryHandler struct {
	db *gorm.DB
}

func NewListCouriersQueryHandler(db *gorm.DB) ListCouriersQueryHandler {
	return ListCouriersQueryHandler{db: db}
}

func (h ListCouriersQueryHandler) Handle(ctx context.Context, query ListCouriersQuery) ([]CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := make([]string, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		if s != order.Pending {
			active = append(active, s.String())
		}
	}

	tx := h.db.WithContext(ctx).
		Table("users AS u").
		Select(`
			u.id,
			u.full_name,
			COALESCE(u.email, ''),
			u.phone,
			u.is_verified,
			u.is_active,
			(SELECT COUNT(*) FROM orders o WHERE o.courier_id = u.id AND o.status IN ?) AS active_orders
		`, active).
		Where("u.role = ?", user.RoleCourier.String())
	if v := query.Verified(); v != nil {
		tx = tx.Where("u.is_verified = ?", *v)
	}

	rows, err := tx.Order("u.full_name, u.id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]CourierResponse, 0)
	for rows.Next() {
		var courier CourierResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&courier.FullName,
			&courier.Email,
			&courier.Phone,
			&courier.IsVerified,
			&courier.IsActive,
			&courier.ActiveOrders,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.ID = courierID
		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
