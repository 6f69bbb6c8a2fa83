package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if statuses := query.Statuses(); len(statuses) > 0 {
		conditions = append(conditions, "o.status IN ?")
		args = append(args, statusNames(statuses))
	}
	if courierID := query.CourierID(); courierID != nil {
		conditions = append(conditions, "o.courier_id = ?")
		args = append(args, courierID.Bytes())
	}
	if clientID := query.ClientID(); clientID != nil {
		conditions = append(conditions, "o.client_id = ?")
		args = append(args, clientID.Bytes())
	}

	sql := `SELECT ` + orderColumns + orderFrom
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` ORDER BY o.created_at DESC, o.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}
