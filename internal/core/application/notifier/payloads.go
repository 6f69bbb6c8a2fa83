package notifier

import (
	"time"
)

// Live event names as seen by connected clients.
const (
	EventNewOrder                  = "new-order"
	EventOrderAssigned             = "order-assigned"
	EventOrderStatusUpdate         = "order-status-update"
	EventOrderDelivered            = "order-delivered"
	EventOrderReceivedConfirmation = "order-received-confirmation"
	EventOrderReceivedAdmin        = "order-received-admin"
)

type NewOrderPayload struct {
	OrderID         string    `json:"orderId"`
	ClientName      string    `json:"clientName"`
	ClientPhone     string    `json:"clientPhone"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	Message         string    `json:"message"`
}

type LocationPayload struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type OrderAssignedPayload struct {
	OrderID          string          `json:"orderId"`
	ClientName       string          `json:"clientName,omitempty"`
	DeliveryAddress  string          `json:"deliveryAddress"`
	ReceiverPhone    string          `json:"receiverPhone"`
	Description      string          `json:"description"`
	DeliveryLocation LocationPayload `json:"deliveryLocation"`
	Message          string          `json:"message"`
}

type StatusUpdatePayload struct {
	OrderID      string     `json:"orderId"`
	Status       string     `json:"status"`
	ClientName   string     `json:"clientName,omitempty"`
	LivreurName  string     `json:"livreurName,omitempty"`
	LivreurPhone string     `json:"livreurPhone,omitempty"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`
	Message      string     `json:"message"`
}

type OrderDeliveredPayload struct {
	OrderID     string    `json:"orderId"`
	ClientName  string    `json:"clientName,omitempty"`
	DeliveredAt time.Time `json:"deliveredAt"`
	Message     string    `json:"message"`
}

type ReceiptPayload struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}
