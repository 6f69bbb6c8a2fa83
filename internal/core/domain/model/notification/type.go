package notification

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

type Type string

const (
	OrderCreated      Type = "ORDER_CREATED"
	OrderAssigned     Type = "ORDER_ASSIGNED"
	OrderStatusUpdate Type = "ORDER_STATUS_UPDATE"
	OrderDelivered    Type = "ORDER_DELIVERED"
	OrderReceived     Type = "ORDER_RECEIVED"
	AccountCreated    Type = "ACCOUNT_CREATED"
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case OrderCreated, OrderAssigned, OrderStatusUpdate, OrderDelivered, OrderReceived, AccountCreated:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", s))
}

func (t Type) String() string {
	return string(t)
}
