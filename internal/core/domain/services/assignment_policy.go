package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

// ErrCourierIsNotEligible is returned when the candidate is not a verified,
// active courier.
var ErrCourierIsNotEligible = errs.NewValueIsInvalidErrorWithCause(
	"livreurId", errors.New("courier is not eligible: must be a verified and active livreur"))

// AssignmentPolicy decides whether a user may be bound to an order.
//
// Admin assignment always checks eligibility. A courier accepting an order on
// its own initiative is only checked when RequireVerifiedSelfAccept is set;
// by default any authenticated courier may self-accept.
//
// Example usage:
//
//	policy := services.NewAssignmentPolicy(cfg.SelfAcceptRequiresVerification)
//	if err := policy.Assign(o, courier, adminID, time.Now()); err != nil {
//	    return err
//	}
type AssignmentPolicy struct {
	RequireVerifiedSelfAccept bool
}

func NewAssignmentPolicy(requireVerifiedSelfAccept bool) AssignmentPolicy {
	return AssignmentPolicy{RequireVerifiedSelfAccept: requireVerifiedSelfAccept}
}

// CanAssign reports whether an admin may bind u as courier.
func (p AssignmentPolicy) CanAssign(u *user.User) bool {
	if u.Validate() != nil {
		return false
	}
	return u.IsEligibleCourier()
}

// CanSelfAccept reports whether u may bind itself as courier.
func (p AssignmentPolicy) CanSelfAccept(u *user.User) bool {
	if u.Validate() != nil || !u.IsCourier() {
		return false
	}
	if p.RequireVerifiedSelfAccept {
		return p.CanAssign(u)
	}
	return true
}

// Assign binds courier to o on behalf of adminID.
func (p AssignmentPolicy) Assign(o *order.Order, courier *user.User, adminID kernel.UUID, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !p.CanAssign(courier) {
		return ErrCourierIsNotEligible
	}
	return o.Assign(courier.ID(), adminID, at)
}

// SelfAccept binds courier to o on its own initiative.
func (p AssignmentPolicy) SelfAccept(o *order.Order, courier *user.User, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if courier.Validate() != nil || !courier.IsCourier() {
		return errs.NewAccessDeniedError("only livreurs can accept orders")
	}
	if !p.CanSelfAccept(courier) {
		return ErrCourierIsNotEligible
	}
	return o.Assign(courier.ID(), courier.ID(), at)
}
