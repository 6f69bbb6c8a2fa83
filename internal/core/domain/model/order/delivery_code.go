package order

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	deliveryCodeLength = 6
	deliveryCodeMin    = 100000
	deliveryCodeSpan   = 900000
)

var ErrDeliveryCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery code must be created via NewDeliveryCode or DeliveryCodeFromString")

// DeliveryCode is the numeric secret handed to the receiver at order creation.
// The courier must present it to close the delivery.
type DeliveryCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewDeliveryCode draws a uniformly random code in [100000, 999999].
func NewDeliveryCode() (DeliveryCode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(deliveryCodeSpan))
	if err != nil {
		return DeliveryCode{}, fmt.Errorf("generate delivery code: %w", err)
	}
	return DeliveryCode{
		value: fmt.Sprintf("%d", n.Int64()+deliveryCodeMin),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// DeliveryCodeFromString restores a persisted code.
func DeliveryCodeFromString(s string) (DeliveryCode, error) {
	if len(s) != deliveryCodeLength {
		return DeliveryCode{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryCode", fmt.Errorf("expected %d digits, got %d characters", deliveryCodeLength, len(s)))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return DeliveryCode{}, errs.NewValueIsInvalidErrorWithCause(
				"deliveryCode", fmt.Errorf("%q is not numeric", s))
		}
	}
	return DeliveryCode{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliveryCode) Validate() error {
	return c.guard.Validate(ErrDeliveryCodeIsNotConstructed)
}

func (c DeliveryCode) String() string {
	return c.value
}

// Matches is an exact, constant-time comparison with the submitted code.
func (c DeliveryCode) Matches(submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(submitted)) == 1
}
