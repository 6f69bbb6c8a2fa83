package http

import (
	"errors"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"
)

// LocationJSON is a GeoJSON point: coordinates are [longitude, latitude].
type LocationJSON struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// LocationInput accepts either a GeoJSON point or a {lat, lng} pair.
type LocationInput struct {
	Coordinates []float64 `json:"coordinates,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
}

func (in *LocationInput) point() (kernel.GeoPoint, error) {
	switch {
	case in == nil:
		return kernel.GeoPoint{}, commands.ErrDeliveryLocationIsRequired
	case in.Coordinates != nil:
		return kernel.GeoPointFromCoordinates(in.Coordinates)
	case in.Lat != nil && in.Lng != nil:
		return kernel.NewGeoPoint(*in.Lat, *in.Lng), nil
	}
	return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause(
		"deliveryLocation", errors.New("expected {coordinates: [lng, lat]} or {lat, lng}"))
}

type CreateOrderRequest struct {
	Description      string         `json:"description"`
	DeliveryAddress  string         `json:"deliveryAddress"`
	ReceiverPhone    string         `json:"receiverPhone"`
	Instructions     string         `json:"instructions"`
	DeliveryLocation *LocationInput `json:"deliveryLocation"`
}

type AssignOrderRequest struct {
	LivreurID string `json:"livreurId"`
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    string   `json:"status"`
}

type CompleteDeliveryRequest struct {
	DeliveryCode string `json:"deliveryCode"`
}

type OrderJSON struct {
	ID               string       `json:"id"`
	ClientID         *string      `json:"clientId"`
	ClientName       *string      `json:"clientName,omitempty"`
	LivreurID        *string      `json:"livreurId"`
	LivreurName      *string      `json:"livreurName,omitempty"`
	LivreurPhone     *string      `json:"livreurPhone,omitempty"`
	Description      string       `json:"description"`
	DeliveryAddress  string       `json:"deliveryAddress"`
	ReceiverPhone    string       `json:"receiverPhone"`
	Instructions     string       `json:"instructions,omitempty"`
	DeliveryLocation LocationJSON `json:"deliveryLocation"`
	Status           string       `json:"status"`
	DeliveryCode     string       `json:"deliveryCode,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	AssignedAt       *time.Time   `json:"assignedAt,omitempty"`
	PickedUpAt       *time.Time   `json:"pickedUpAt,omitempty"`
	DeliveredAt      *time.Time   `json:"deliveredAt,omitempty"`
}

// toOrderJSON shows the delivery code to admins and to the owning client only.
func toOrderJSON(o queries.OrderResponse, viewer *auth.Principal) OrderJSON {
	out := OrderJSON{
		ID:              o.ID.String(),
		ClientID:        idString(o.ClientID),
		ClientName:      o.ClientName,
		LivreurID:       idString(o.CourierID),
		LivreurName:     o.CourierName,
		LivreurPhone:    o.CourierPhone,
		Description:     o.Description,
		DeliveryAddress: o.DeliveryAddress,
		ReceiverPhone:   o.ReceiverPhone,
		Instructions:    o.Instructions,
		DeliveryLocation: LocationJSON{
			Type:        "Point",
			Coordinates: o.Location.Coordinates(),
		},
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		AssignedAt:  o.AssignedAt,
		PickedUpAt:  o.PickedUpAt,
		DeliveredAt: o.DeliveredAt,
	}
	if canSeeDeliveryCode(o, viewer) {
		out.DeliveryCode = o.DeliveryCode
	}
	return out
}

func toOrdersJSON(list []queries.OrderResponse, viewer *auth.Principal) []OrderJSON {
	out := make([]OrderJSON, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderJSON(o, viewer))
	}
	return out
}

func canSeeDeliveryCode(o queries.OrderResponse, viewer *auth.Principal) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin() || (o.ClientID != nil && o.ClientID.IsEqual(viewer.UserID))
}

type NotificationJSON struct {
	ID        string    `json:"id"`
	SenderID  *string   `json:"senderId,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"relatedId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationsJSON(list []queries.NotificationResponse) []NotificationJSON {
	out := make([]NotificationJSON, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationJSON{
			ID:        n.ID.String(),
			SenderID:  idString(n.SenderID),
			Type:      n.Type.String(),
			Message:   n.Message,
			RelatedID: idString(n.RelatedID),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type StatsJSON struct {
	UsersByRole      map[string]int64 `json:"usersByRole"`
	VerifiedCouriers int64            `json:"verifiedLivreurs"`
	ActiveCouriers   int64            `json:"activeLivreurs"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
	TotalOrders      int64            `json:"totalOrders"`
}

type CourierJSON struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone"`
	IsVerified   bool   `json:"isVerified"`
	IsActive     bool   `json:"isActive"`
	ActiveOrders int64  `json:"activeOrders"`
}

func toCouriersJSON(couriers []queries.CourierResponse) []CourierJSON {
	out := make([]CourierJSON, 0, len(couriers))
	for _, c := range couriers {
		out = append(out, CourierJSON{
			ID:           c.ID.String(),
			FullName:     c.FullName,
			Email:        c.Email,
			Phone:        c.Phone,
			IsVerified:   c.IsVerified,
			IsActive:     c.IsActive,
			ActiveOrders: c.ActiveOrders,
		})
	}
	return out
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
