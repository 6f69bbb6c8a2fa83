// Package queries contains the read side of dispatch. Handlers query Postgres
// directly through GORM and return flat response structs; they never load
// aggregates.
package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the read model of an order. CourierName and ClientName are
// filled from the user directory when the account still exists.
type OrderResponse struct {
	ID              kernel.UUID
	ClientID        *kernel.UUID
	ClientName      *string
	CourierID       *kernel.UUID
	CourierName     *string
	CourierPhone    *string
	Description     string
	DeliveryAddress string
	ReceiverPhone   string
	Instructions    string
	Location        kernel.GeoPoint
	Status          order.Status
	DeliveryCode    string
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

const orderColumns = `
	o.id,
	o.client_id,
	cu.full_name,
	o.courier_id,
	co.full_name,
	co.phone,
	o.description,
	o.delivery_address,
	o.receiver_phone,
	o.instructions,
	o.location_longitude,
	o.location_latitude,
	o.status,
	o.delivery_code,
	o.created_at,
	o.assigned_at,
	o.picked_up_at,
	o.delivered_at`

const orderFrom = `
	FROM orders o
	LEFT JOIN users cu ON cu.id = o.client_id
	LEFT JOIN users co ON co.id = o.courier_id`

func scanOrder(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp                OrderResponse
		id                  uuid.UUID
		clientID, courierID uuid.NullUUID
		clientName          sql.NullString
		courierName         sql.NullString
		courierPhone        sql.NullString
		longitude, latitude float64
		status              string
	)

	err := rows.Scan(
		&id,
		&clientID,
		&clientName,
		&courierID,
		&courierName,
		&courierPhone,
		&resp.Description,
		&resp.DeliveryAddress,
		&resp.ReceiverPhone,
		&resp.Instructions,
		&longitude,
		&latitude,
		&status,
		&resp.DeliveryCode,
		&resp.CreatedAt,
		&resp.AssignedAt,
		&resp.PickedUpAt,
		&resp.DeliveredAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.ClientID, err = nullableID(clientID); err != nil {
		return OrderResponse{}, err
	}
	if resp.CourierID, err = nullableID(courierID); err != nil {
		return OrderResponse{}, err
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return OrderResponse{}, err
	}
	resp.ClientName = nullableString(clientName)
	resp.CourierName = nullableString(courierName)
	resp.CourierPhone = nullableString(courierPhone)
	resp.Location = kernel.NewGeoPoint(latitude, longitude)

	return resp, nil
}

func scanOrders(rows *sql.Rows) ([]OrderResponse, error) {
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	v, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
