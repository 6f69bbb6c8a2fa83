package notification

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultListLimit caps a recipient listing when the caller gives no limit.
const DefaultListLimit = 20

var (
	ErrMessageIsRequired = errs.NewValueIsRequiredError("message")

	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")
)

// Notification is addressed to exactly one recipient.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	senderID    *kernel.UUID
	kind        Type
	message     string
	relatedID   *kernel.UUID
	isRead      bool
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification. senderID and relatedID are optional.
func NewNotification(
	id, recipientID kernel.UUID,
	senderID *kernel.UUID,
	kind Type,
	message string,
	relatedID *kernel.UUID,
	createdAt time.Time,
) (*Notification, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := recipientID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("recipient", err))
	}
	if _, err := ParseType(string(kind)); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(message) == "" {
		errList = append(errList, ErrMessageIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Notification{
		id:          id,
		recipientID: recipientID,
		senderID:    copyID(senderID),
		kind:        kind,
		message:     message,
		relatedID:   copyID(relatedID),
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreNotification rebuilds a persisted notification including its read flag.
func RestoreNotification(
	id, recipientID kernel.UUID,
	senderID *kernel.UUID,
	kind Type,
	message string,
	relatedID *kernel.UUID,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipientID, senderID, kind, message, relatedID, createdAt)
	if err != nil {
		return nil, err
	}
	n.isRead = isRead
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID         { return n.id }
func (n *Notification) Recipient() kernel.UUID  { return n.recipientID }
func (n *Notification) Sender() *kernel.UUID    { return n.senderID }
func (n *Notification) Type() Type              { return n.kind }
func (n *Notification) Message() string         { return n.message }
func (n *Notification) RelatedID() *kernel.UUID { return n.relatedID }
func (n *Notification) IsRead() bool            { return n.isRead }
func (n *Notification) CreatedAt() time.Time    { return n.createdAt }

// MarkRead is idempotent.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
