package user

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("fullName")
	ErrPhoneIsRequired    = errs.NewValueIsRequiredError("phone")

	// ErrUserIsNotConstructed is returned when using a User that bypassed NewUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// User is an account as seen by the dispatch core.
type User struct {
	id       kernel.UUID
	fullName string
	email    string
	phone    string
	role     Role

	// isVerified is the admin verification gate for couriers.
	isVerified bool
	isActive   bool

	guard guard.ConstructorGuard
}

// NewUser creates an active, unverified account.
func NewUser(id kernel.UUID, fullName, email, phone string, role Role) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if fullName == "" {
		errList = append(errList, ErrFullNameIsRequired)
	}
	if phone == "" {
		errList = append(errList, ErrPhoneIsRequired)
	}
	if err := role.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &User{
		id:       id,
		fullName: fullName,
		email:    strings.ToLower(strings.TrimSpace(email)),
		phone:    phone,
		role:     role,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreUser rebuilds a User from persisted flags.
func RestoreUser(id kernel.UUID, fullName, email, phone string, role Role, isVerified, isActive bool) (*User, error) {
	u, err := NewUser(id, fullName, email, phone, role)
	if err != nil {
		return nil, err
	}
	u.isVerified = isVerified
	u.isActive = isActive
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) FullName() string {
	return u.fullName
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsVerified() bool {
	return u.isVerified
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) IsCourier() bool {
	return u.role == RoleCourier
}

// Verify lifts the verification gate. Only couriers carry it.
func (u *User) Verify() error {
	if !u.IsCourier() {
		return errs.NewValueIsInvalidErrorWithCause("role", errors.New("only couriers are verified"))
	}
	u.isVerified = true
	return nil
}

func (u *User) Deactivate() {
	u.isActive = false
}

// IsEligibleCourier is derived on every call and never stored.
func (u *User) IsEligibleCourier() bool {
	return u.IsCourier() && u.isVerified && u.isActive
}
