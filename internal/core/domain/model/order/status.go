package order

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Status is the position of an order in its lifecycle.
//
// Transitions:
//   - Pending    -> Assigned   (admin assignment or courier self-accept)
//   - Assigned   -> InDelivery (courier picked the parcel up)
//   - InDelivery -> Delivered  (courier reports the drop-off)
//   - Delivered  -> Received   (client confirmation)
//   - Assigned, InDelivery, Delivered -> Received (courier presents the delivery code)
type Status int

const (
	// Unknown is the zero value and never a valid persisted state.
	Unknown Status = iota
	Pending
	Assigned
	InDelivery
	Delivered
	Received
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Assigned:   "ASSIGNED",
	InDelivery: "IN_DELIVERY",
	Delivered:  "DELIVERED",
	Received:   "RECEIVED",
}

// ParseStatus maps a canonical or lower-case status name to a Status.
func ParseStatus(s string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == upper {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// ActiveStatuses lists the states of orders that still need work.
func ActiveStatuses() []Status {
	return []Status{Pending, Assigned, InDelivery}
}

// AllStatuses lists every valid state in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Assigned, InDelivery, Delivered, Received}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Received
}

// ValidateCanHaveCourier enforces that only PENDING orders are unbound.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	if hasCourier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !hasCourier && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

func (s Status) Assign() (Status, error) {
	return s.transition(Assigned, "assign", Pending)
}

func (s Status) PickUp() (Status, error) {
	return s.transition(InDelivery, "pick up", Assigned)
}

func (s Status) Deliver() (Status, error) {
	return s.transition(Delivered, "deliver", InDelivery)
}

// CompleteWithCode does not require DELIVERED: a courier may hand over and
// present the code straight from ASSIGNED or IN_DELIVERY.
func (s Status) CompleteWithCode() (Status, error) {
	return s.transition(Received, "complete with delivery code", Assigned, InDelivery, Delivered)
}

func (s Status) ConfirmReceipt() (Status, error) {
	return s.transition(Received, "confirm receipt", Delivered)
}

func (s Status) transition(target Status, action string, allowed ...Status) (Status, error) {
	for _, from := range allowed {
		if s == from {
			return target, nil
		}
	}
	return Unknown, errs.NewConflictError("order", fmt.Sprintf("%s is not a valid status to %s", s, action))
}
