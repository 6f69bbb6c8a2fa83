// Package notifier turns committed order events into stored notifications and
// live events. It runs after the order write has committed: every failure is
// logged and counted, none is returned.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/metrics"
)

const (
	msgNewOrderFrom       = "Nouvelle commande de %s"
	msgAnonymousClient    = "un client"
	msgUnknownClient      = "Client inconnu"
	msgCourierAssigned    = "Nouvelle commande assignée"
	msgClientAssigned     = "Votre commande est en cours - Un livreur a été assigné"
	msgClientInDelivery   = "Votre commande est en cours de livraison"
	msgClientDelivered    = "Commande validée - Produit livré avec succès"
	msgAdminStatus        = "Commande %s - Statut: %s"
	msgAdminCompleted     = "Commande livrée avec succès"
	msgReceiptConfirmedBy = "Le client a confirmé la réception de la commande %s"
)

// Notifier implements ports.DomainEventDispatcher.
type Notifier struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	publisher     ports.EventPublisher
	logger        *slog.Logger
	now           func() time.Time
}

func New(
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger.With("component", "notifier"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch handles events in order. Admin records are created one per admin;
// the admin live event is a single broadcast.
func (n *Notifier) Dispatch(ctx context.Context, events []order.DomainEvent) {
	for _, event := range events {
		metrics.OrderEventsTotal.WithLabelValues(event.EventName()).Inc()

		switch e := event.(type) {
		case order.CreatedEvent:
			n.orderCreated(ctx, e)
		case order.AssignedEvent:
			n.orderAssigned(ctx, e)
		case order.StatusAdvancedEvent:
			n.statusAdvanced(ctx, e)
		case order.CompletedEvent:
			n.orderCompleted(ctx, e)
		case order.ReceiptConfirmedEvent:
			n.receiptConfirmed(ctx, e)
		default:
			n.logger.WarnContext(ctx, "unhandled order event", "event", event.EventName(), "order_id", event.AggregateID())
		}
	}
}

func (n *Notifier) orderCreated(ctx context.Context, e order.CreatedEvent) {
	client := n.lookupUser(ctx, e.ClientID)

	name := msgAnonymousClient
	clientName, clientPhone := msgUnknownClient, e.ReceiverPhone
	if client != nil {
		name, clientName, clientPhone = client.FullName(), client.FullName(), client.Phone()
	}
	message := fmt.Sprintf(msgNewOrderFrom, name)

	n.storeForAdmins(ctx, e.ClientID, notification.OrderCreated, message, e.OrderID)
	n.publish(ctx, ports.AdminChannel(), EventNewOrder, NewOrderPayload{
		OrderID:         e.OrderID.String(),
		ClientName:      clientName,
		ClientPhone:     clientPhone,
		DeliveryAddress: e.DeliveryAddress,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		Message:         message,
	})
}

// orderAssigned tells the bound courier and the client, whether an admin
// assigned the order or the courier accepted it.
func (n *Notifier) orderAssigned(ctx context.Context, e order.AssignedEvent) {
	courier := n.lookupUser(ctx, &e.CourierID)
	client := n.lookupUser(ctx, e.ClientID)
	actorID := e.ActorID

	n.store(ctx, e.CourierID, &actorID, notification.OrderAssigned, msgCourierAssigned, e.OrderID)
	n.publish(ctx, ports.UserChannel(e.CourierID), EventOrderAssigned, OrderAssignedPayload{
		OrderID:         e.OrderID.String(),
		ClientName:      fullName(client),
		DeliveryAddress: e.DeliveryAddress,
		ReceiverPhone:   e.ReceiverPhone,
		Description:     e.Description,
		DeliveryLocation: LocationPayload{
			Type:        "Point",
			Coordinates: e.Location.Coordinates(),
		},
		Message: msgCourierAssigned,
	})

	if e.ClientID == nil {
		return
	}
	n.store(ctx, *e.ClientID, &actorID, notification.OrderStatusUpdate, msgClientAssigned, e.OrderID)
	n.publish(ctx, ports.UserChannel(*e.ClientID), EventOrderStatusUpdate, StatusUpdatePayload{
		OrderID:      e.OrderID.String(),
		Status:       order.Assigned.String(),
		LivreurName:  fullName(courier),
		LivreurPhone: phone(courier),
		Message:      msgClientAssigned,
	})
}

func (n *Notifier) statusAdvanced(ctx context.Context, e order.StatusAdvancedEvent) {
	courier := n.lookupUser(ctx, &e.CourierID)
	client := n.lookupUser(ctx, e.ClientID)
	courierID := e.CourierID

	var clientMessage string
	switch e.Status {
	case order.InDelivery:
		clientMessage = msgClientInDelivery
	case order.Delivered:
		clientMessage = msgClientDelivered
	}
	adminMessage := fmt.Sprintf(msgAdminStatus, e.OrderID, e.Status)

	if e.ClientID != nil && clientMessage != "" {
		n.store(ctx, *e.ClientID, &courierID, notification.OrderStatusUpdate, clientMessage, e.OrderID)
	}
	n.storeForAdmins(ctx, &courierID, notification.OrderStatusUpdate, adminMessage, e.OrderID)

	if e.ClientID != nil && clientMessage != "" {
		n.publish(ctx, ports.UserChannel(*e.ClientID), EventOrderStatusUpdate, StatusUpdatePayload{
			OrderID:     e.OrderID.String(),
			Status:      e.Status.String(),
			LivreurName: fullName(courier),
			Message:     clientMessage,
		})
	}
	n.publish(ctx, ports.AdminChannel(), EventOrderStatusUpdate, StatusUpdatePayload{
		OrderID:     e.OrderID.String(),
		Status:      e.Status.String(),
		ClientName:  fullName(client),
		LivreurName: fullName(courier),
		Message:     adminMessage,
	})
}

func (n *Notifier) orderCompleted(ctx context.Context, e order.CompletedEvent) {
	client := n.lookupUser(ctx, e.ClientID)
	courierID := e.CourierID
	deliveredAt := e.DeliveredAt

	if e.ClientID != nil {
		n.store(ctx, *e.ClientID, &courierID, notification.OrderStatusUpdate, msgClientDelivered, e.OrderID)
	}
	n.storeForAdmins(ctx, &courierID, notification.OrderDelivered, msgAdminCompleted, e.OrderID)

	if e.ClientID != nil {
		n.publish(ctx, ports.UserChannel(*e.ClientID), EventOrderStatusUpdate, StatusUpdatePayload{
			OrderID:     e.OrderID.String(),
			Status:      order.Received.String(),
			DeliveredAt: &deliveredAt,
			Message:     msgClientDelivered,
		})
	}
	n.publish(ctx, ports.AdminChannel(), EventOrderDelivered, OrderDeliveredPayload{
		OrderID:     e.OrderID.String(),
		ClientName:  fullName(client),
		DeliveredAt: deliveredAt,
		Message:     msgAdminCompleted,
	})
}

func (n *Notifier) receiptConfirmed(ctx context.Context, e order.ReceiptConfirmedEvent) {
	clientID := e.ClientID
	message := fmt.Sprintf(msgReceiptConfirmedBy, shortID(e.OrderID))
	payload := ReceiptPayload{OrderID: e.OrderID.String(), Message: message}

	n.store(ctx, e.CourierID, &clientID, notification.OrderReceived, message, e.OrderID)
	n.publish(ctx, ports.UserChannel(e.CourierID), EventOrderReceivedConfirmation, payload)

	n.storeForAdmins(ctx, &clientID, notification.OrderReceived, message, e.OrderID)
	n.publish(ctx, ports.AdminChannel(), EventOrderReceivedAdmin, payload)
}

func (n *Notifier) storeForAdmins(
	ctx context.Context,
	sender *kernel.UUID,
	kind notification.Type,
	message string,
	orderID kernel.UUID,
) {
	admins, err := n.users.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("lookup").Inc()
		n.logger.ErrorContext(ctx, "failed to list admins", "order_id", orderID, "error", err)
		return
	}
	for _, admin := range admins {
		n.store(ctx, admin.ID(), sender, kind, message, orderID)
	}
}

func (n *Notifier) store(
	ctx context.Context,
	recipient kernel.UUID,
	sender *kernel.UUID,
	kind notification.Type,
	message string,
	orderID kernel.UUID,
) {
	related := orderID
	record, err := notification.NewNotification(kernel.NewUUID(), recipient, sender, kind, message, &related, n.now())
	if err == nil {
		err = n.notifications.Add(ctx, record)
	}
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("store").Inc()
		n.logger.ErrorContext(ctx, "failed to store notification",
			"order_id", orderID, "recipient", recipient, "type", kind, "error", err)
		return
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(kind.String()).Inc()
}

func (n *Notifier) publish(ctx context.Context, channel ports.Channel, event string, payload any) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, channel, event, payload); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("publish").Inc()
		n.logger.ErrorContext(ctx, "failed to publish live event",
			"event", event, "channel", channel.String(), "error", err)
	}
}

// lookupUser returns nil for a nil id or any lookup failure; names in
// messages are cosmetic.
func (n *Notifier) lookupUser(ctx context.Context, id *kernel.UUID) *user.User {
	if id == nil {
		return nil
	}
	u, err := n.users.Get(ctx, *id)
	if err != nil {
		n.logger.WarnContext(ctx, "user lookup failed", "user_id", *id, "error", err)
		return nil
	}
	return u
}

func fullName(u *user.User) string {
	if u == nil {
		return ""
	}
	return u.FullName()
}

func phone(u *user.User) string {
	if u == nil {
		return ""
	}
	return u.Phone()
}

func shortID(id kernel.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
