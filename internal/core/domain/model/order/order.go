package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details is the free-text part of an order supplied by the client.
type Details struct {
	Description     string
	DeliveryAddress string
	ReceiverPhone   string
	Instructions    string
}

// Order is the aggregate root of the dispatch domain. The lifecycle engine is
// its sole writer: every status change goes through one of its transition
// methods, which checks the source state and records a DomainEvent.
//
// Invariants:
//   - courierID is set if and only if status is not Pending
//   - createdAt <= assignedAt <= pickedUpAt <= deliveredAt whenever set
//   - a transition that fails leaves every field unchanged
type Order struct {
	id       kernel.UUID
	clientID *kernel.UUID

	// courierID is nil while the order is Pending
	courierID *kernel.UUID

	details Details

	// location is the courier's last reported position, initially the client's pin
	location kernel.GeoPoint

	status       Status
	deliveryCode DeliveryCode

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	events        []DomainEvent
	isConstructed bool
}

// NewOrder creates a PENDING order and records a CreatedEvent.
// clientID is nil for orders placed without an authenticated client.
//
// Example:
//
//	code, _ := order.NewDeliveryCode()
//	o, err := order.NewOrder(kernel.NewUUID(), &clientID, order.Details{
//	    Description:     "2 boxes",
//	    DeliveryAddress: "12 rue de la Paix",
//	    ReceiverPhone:   "+33600000000",
//	}, kernel.NewGeoPoint(48.86, 2.33), code, time.Now())
func NewOrder(
	id kernel.UUID,
	clientID *kernel.UUID,
	details Details,
	location kernel.GeoPoint,
	code DeliveryCode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setDetails(details),
		o.setLocation(location),
		o.setDeliveryCode(code),
	); err != nil {
		return nil, err
	}

	o.record(CreatedEvent{
		OrderID:         o.id,
		ClientID:        o.clientID,
		Description:     o.details.Description,
		DeliveryAddress: o.details.DeliveryAddress,
		ReceiverPhone:   o.details.ReceiverPhone,
		CreatedAt:       createdAt,
	})
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	ClientID     *kernel.UUID
	CourierID    *kernel.UUID
	Details      Details
	Location     kernel.GeoPoint
	Status       Status
	DeliveryCode DeliveryCode
	CreatedAt    time.Time
	AssignedAt   *time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
}

// RestoreOrder rebuilds an aggregate from persistence and re-checks its invariants.
// No event is recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt,
		assignedAt:    s.AssignedAt,
		pickedUpAt:    s.PickedUpAt,
		deliveredAt:   s.DeliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClientID(s.ClientID),
		o.setDetails(s.Details),
		o.setLocation(s.Location),
		o.setDeliveryCode(s.DeliveryCode),
		s.Status.Validate(),
		s.Status.ValidateCanHaveCourier(s.CourierID != nil),
	); err != nil {
		return nil, err
	}

	if s.CourierID != nil {
		if err := s.CourierID.Validate(); err != nil {
			return nil, err
		}
		courierID := *s.CourierID
		o.courierID = &courierID
	}
	o.status = s.Status

	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Client returns the owning client, nil for anonymous orders.
func (o *Order) Client() *kernel.UUID {
	return o.clientID
}

// Courier returns the bound courier, nil while the order is Pending.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

func (o *Order) Details() Details {
	return o.details
}

// Location returns the courier's last reported position.
func (o *Order) Location() kernel.GeoPoint {
	return o.location
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryCode() DeliveryCode {
	return o.deliveryCode
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// IsOwnedBy reports whether clientID placed the order.
func (o *Order) IsOwnedBy(clientID kernel.UUID) bool {
	return o.clientID != nil && o.clientID.IsEqual(clientID)
}

// IsAssignedTo reports whether courierID is the bound courier.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Assign binds courierID and moves the order to ASSIGNED. actorID is the admin
// or, for a self-accept, the courier itself. Eligibility is checked by the
// caller through the assignment policy.
func (o *Order) Assign(courierID, actorID kernel.UUID, at time.Time) error {
	if err := errors.Join(courierID.Validate(), actorID.Validate()); err != nil {
		return err
	}

	next, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = next
	o.courierID = &courierID
	o.assignedAt = o.stamp(at)

	o.record(AssignedEvent{
		OrderID:         o.id,
		ClientID:        o.clientID,
		CourierID:       courierID,
		ActorID:         actorID,
		SelfAccepted:    courierID.IsEqual(actorID),
		Description:     o.details.Description,
		DeliveryAddress: o.details.DeliveryAddress,
		ReceiverPhone:   o.details.ReceiverPhone,
		Location:        o.location,
		AssignedAt:      *o.assignedAt,
	})
	return nil
}

// MoveTo overwrites the courier's last position. There is no ordering check
// against earlier fixes: the last writer wins.
func (o *Order) MoveTo(location kernel.GeoPoint) error {
	return o.setLocation(location)
}

// PickUp moves an ASSIGNED order to IN_DELIVERY.
func (o *Order) PickUp(at time.Time) error {
	next, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = next
	if o.pickedUpAt == nil {
		o.pickedUpAt = o.stamp(at)
	}
	o.record(StatusAdvancedEvent{
		OrderID:   o.id,
		ClientID:  o.clientID,
		CourierID: *o.courierID,
		Status:    next,
		At:        *o.pickedUpAt,
	})
	return nil
}

// Deliver moves an IN_DELIVERY order to DELIVERED.
func (o *Order) Deliver(at time.Time) error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = next
	if o.deliveredAt == nil {
		o.deliveredAt = o.stamp(at)
	}
	o.record(StatusAdvancedEvent{
		OrderID:   o.id,
		ClientID:  o.clientID,
		CourierID: *o.courierID,
		Status:    next,
		At:        *o.deliveredAt,
	})
	return nil
}

// CompleteWithCode closes the delivery when the courier presents the receiver's
// code. A wrong code is a validation error and changes nothing. deliveredAt is
// re-stamped on success.
func (o *Order) CompleteWithCode(submitted string, at time.Time) error {
	if strings.TrimSpace(submitted) == "" {
		return errs.NewValueIsRequiredError("deliveryCode")
	}
	if !o.deliveryCode.Matches(submitted) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCode", errors.New("delivery code does not match"))
	}

	next, err := o.status.CompleteWithCode()
	if err != nil {
		return err
	}

	o.status = next
	o.deliveredAt = o.stamp(at)
	o.record(CompletedEvent{
		OrderID:     o.id,
		ClientID:    o.clientID,
		CourierID:   *o.courierID,
		DeliveredAt: *o.deliveredAt,
	})
	return nil
}

// ConfirmReceipt lets the owning client close a DELIVERED order.
func (o *Order) ConfirmReceipt(clientID kernel.UUID) error {
	if !o.IsOwnedBy(clientID) {
		return errs.NewAccessDeniedError(fmt.Sprintf("order %s does not belong to client %s", o.id, clientID))
	}

	next, err := o.status.ConfirmReceipt()
	if err != nil {
		return err
	}

	o.status = next
	o.record(ReceiptConfirmedEvent{
		OrderID:   o.id,
		ClientID:  clientID,
		CourierID: *o.courierID,
	})
	return nil
}

// PullEvents returns the events recorded since the last call and forgets them.
func (o *Order) PullEvents() []DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(e DomainEvent) {
	o.events = append(o.events, e)
}

// stamp never moves a lifecycle timestamp before the latest one already set.
func (o *Order) stamp(at time.Time) *time.Time {
	latest := o.createdAt
	for _, ts := range []*time.Time{o.assignedAt, o.pickedUpAt, o.deliveredAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	if at.Before(latest) {
		at = latest
	}
	return &at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	id := *clientID
	o.clientID = &id
	return nil
}

func (o *Order) setDetails(d Details) error {
	var errList []error
	if strings.TrimSpace(d.Description) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("description"))
	}
	if strings.TrimSpace(d.DeliveryAddress) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("deliveryAddress"))
	}
	if strings.TrimSpace(d.ReceiverPhone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverPhone"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.details = Details{
		Description:     strings.TrimSpace(d.Description),
		DeliveryAddress: d.DeliveryAddress,
		ReceiverPhone:   d.ReceiverPhone,
		Instructions:    d.Instructions,
	}
	return nil
}

func (o *Order) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setDeliveryCode(code DeliveryCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.deliveryCode = code
	return nil
}
