// Package orderrepo persists the Order aggregate with GORM.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Status is stored by name so
// that the compare-and-set condition reads naturally in SQL.
type OrderDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ClientID        *uuid.UUID  `gorm:"type:uuid;index"`
	CourierID       *uuid.UUID  `gorm:"type:uuid;index"`
	Description     string      `gorm:"type:text;not null"`
	DeliveryAddress string      `gorm:"type:text;not null"`
	ReceiverPhone   string      `gorm:"type:varchar(32);not null"`
	Instructions    string      `gorm:"type:text"`
	Location        LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status          string      `gorm:"type:varchar(16);not null;index"`
	DeliveryCode    string      `gorm:"type:char(6);not null"`
	CreatedAt       time.Time   `gorm:"not null;index"`
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO holds the courier's last position. No spatial index: nothing queries by distance.
type LocationDTO struct {
	Longitude float64 `gorm:"type:double precision;not null"`
	Latitude  float64 `gorm:"type:double precision;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		ClientID:        rawID(o.Client()),
		CourierID:       rawID(o.Courier()),
		Description:     d.Description,
		DeliveryAddress: d.DeliveryAddress,
		ReceiverPhone:   d.ReceiverPhone,
		Instructions:    d.Instructions,
		Location: LocationDTO{
			Longitude: o.Location().Longitude(),
			Latitude:  o.Location().Latitude(),
		},
		Status:       o.Status().String(),
		DeliveryCode: o.DeliveryCode().String(),
		CreatedAt:    o.CreatedAt(),
		AssignedAt:   o.AssignedAt(),
		PickedUpAt:   o.PickedUpAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := domainID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	courierID, err := domainID(dto.CourierID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	code, err := order.DeliveryCodeFromString(dto.DeliveryCode)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:        id,
		ClientID:  clientID,
		CourierID: courierID,
		Details: order.Details{
			Description:     dto.Description,
			DeliveryAddress: dto.DeliveryAddress,
			ReceiverPhone:   dto.ReceiverPhone,
			Instructions:    dto.Instructions,
		},
		Location:     kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude),
		Status:       status,
		DeliveryCode: code,
		CreatedAt:    dto.CreatedAt,
		AssignedAt:   dto.AssignedAt,
		PickedUpAt:   dto.PickedUpAt,
		DeliveredAt:  dto.DeliveredAt,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
