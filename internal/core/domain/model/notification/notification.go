package notification

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Type classifies a notification by the pipeline that produced it.
type Type string

const (
	TypeOrder    Type = "order"
	TypePayment  Type = "payment"
	TypeShipment Type = "shipment"
	TypePayout   Type = "payout"

	// TypeAchievement is reserved for gamification pushes. No component
	// produces it yet; the constant keeps stored rows parseable.
	TypeAchievement Type = "achievement"
)

// ParseType validates a raw notification type code from storage or the wire.
func ParseType(code string) (Type, error) {
	switch t := Type(code); t {
	case TypeOrder, TypePayment, TypeShipment, TypePayout, TypeAchievement:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("notificationType",
			fmt.Errorf("unrecognized notification type %q", code))
	}
}

func (t Type) String() string {
	return string(t)
}

// Role identifies which side of the marketplace the recipient is on.
type Role string

const (
	RoleDriver   Role = "driver"
	RoleOwner    Role = "owner"
	RoleCustomer Role = "customer"
)

// ParseRole validates a raw recipient role code.
func ParseRole(code string) (Role, error) {
	switch r := Role(code); r {
	case RoleDriver, RoleOwner, RoleCustomer:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("recipientRole",
			fmt.Errorf("unrecognized recipient role %q", code))
	}
}

func (r Role) String() string {
	return string(r)
}

// Priority hints how prominently the client should surface the notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a raw priority code.
func ParsePriority(code string) (Priority, error) {
	switch p := Priority(code); p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("unrecognized priority %q", code))
	}
}

func (p Priority) String() string {
	return string(p)
}

// ErrNotificationIsNotConstructed occurs when a Notification is used without
// NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errs.NewValueIsRequiredError(
	"notification must be created via NewNotification or RestoreNotification constructor")

// Notification is a durable in-app notification row. Rows are written exactly
// once per (entityID, notificationType) pair and the only mutation afterwards
// is marking them read.
type Notification struct {
	id            kernel.UUID
	recipientID   kernel.UUID
	recipientRole Role
	kind          Type
	title         string
	body          string
	priority      Priority
	entityID      kernel.UUID
	read          bool
	createdAt     time.Time

	isConstructed bool
}

// NewNotification creates an unread notification row.
//
// Parameters:
//   - id: row identity.
//   - recipientID: the user the row belongs to.
//   - recipientRole: marketplace side of the recipient.
//   - kind: notification type; paired with entityID for idempotency.
//   - title, body: display text, both required.
//   - priority: client display hint.
//   - entityID: the domain entity the notification is about.
//   - now: creation timestamp.
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	recipientRole Role,
	kind Type,
	title string,
	body string,
	priority Priority,
	entityID kernel.UUID,
	now time.Time,
) (*Notification, error) {
	if err := validateFields(id, recipientID, recipientRole, kind, title, body, priority, entityID); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		recipientRole: recipientRole,
		kind:          kind,
		title:         title,
		body:          body,
		priority:      priority,
		entityID:      entityID,
		read:          false,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	recipientRole Role,
	kind Type,
	title string,
	body string,
	priority Priority,
	entityID kernel.UUID,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	if err := validateFields(id, recipientID, recipientRole, kind, title, body, priority, entityID); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		recipientRole: recipientRole,
		kind:          kind,
		title:         title,
		body:          body,
		priority:      priority,
		entityID:      entityID,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func validateFields(
	id kernel.UUID,
	recipientID kernel.UUID,
	recipientRole Role,
	kind Type,
	title string,
	body string,
	priority Priority,
	entityID kernel.UUID,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := recipientID.Validate(); err != nil {
		return err
	}
	if _, err := ParseRole(string(recipientRole)); err != nil {
		return err
	}
	if _, err := ParseType(string(kind)); err != nil {
		return err
	}
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	if _, err := ParsePriority(string(priority)); err != nil {
		return err
	}
	return entityID.Validate()
}

// Validate ensures the notification was built through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) Recipient() kernel.UUID {
	return n.recipientID
}

func (n *Notification) RecipientRole() Role {
	return n.recipientRole
}

func (n *Notification) Type() Type {
	return n.kind
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Body() string {
	return n.body
}

func (n *Notification) Priority() Priority {
	return n.priority
}

// Entity returns the domain entity this notification is about. Together with
// Type it forms the idempotency key.
func (n *Notification) Entity() kernel.UUID {
	return n.entityID
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead flips the read flag. Marking an already-read notification is a
// no-op, not an error.
func (n *Notification) MarkRead() {
	n.read = true
}
