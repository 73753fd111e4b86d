// Package notifications turns committed domain events into in-app
// notification rows and best-effort push messages. The dispatcher is
// idempotent: a replayed event finds its row already present and writes
// nothing, so crashed handlers can safely re-dispatch.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/core/ports"
)

// Dispatcher implements commands.EventDispatcher. The row write is durable
// and always precedes the push attempt; push failures are logged and never
// propagated, so a dead push provider cannot fail a delivery transition.
type Dispatcher struct {
	uowFactory commands.NotificationUoWFactory
	sender     ports.PushSender
	registry   ports.DeviceTokenRegistry
	logger     *slog.Logger
	now        func() time.Time
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(
	uowFactory commands.NotificationUoWFactory,
	sender ports.PushSender,
	registry ports.DeviceTokenRegistry,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		sender:     sender,
		registry:   registry,
		logger:     logger.With("component", "notifications"),
		now:        time.Now,
	}
}

// message is one rendered notification before persistence.
type message struct {
	recipientID kernel.UUID
	role        notification.Role
	kind        notification.Type
	title       string
	body        string
	priority    notification.Priority
	entityID    kernel.UUID
}

// Announcement is a pre-rendered notification from outside the delivery
// domain, typically a marketplace event arriving over the broker.
type Announcement struct {
	RecipientID kernel.UUID
	Role        notification.Role
	Kind        notification.Type
	Title       string
	Body        string
	Priority    notification.Priority
	EntityID    kernel.UUID
}

// Announce delivers a pre-rendered notification through the same idempotent
// store-then-push pipeline as domain events. A redelivered broker message
// finds its row present and writes nothing.
func (d *Dispatcher) Announce(ctx context.Context, a Announcement) {
	d.deliver(ctx, message{
		recipientID: a.RecipientID,
		role:        a.Role,
		kind:        a.Kind,
		title:       a.Title,
		body:        a.Body,
		priority:    a.Priority,
		entityID:    a.EntityID,
	})
}

// DispatchJobEvent renders and delivers notifications for a job status
// change. The dispensary owner follows every transition; the customer has no
// account in this system, so their updates travel over the tracking feed
// instead.
func (d *Dispatcher) DispatchJobEvent(ctx context.Context, event job.StatusChanged) {
	msg, ok := d.renderJobEvent(event)
	if !ok {
		return
	}
	d.deliver(ctx, msg)
}

// DispatchPayoutEvent renders and delivers notifications for a payout request
// status change. A new request alerts the dispensary owner; review outcomes
// alert the driver.
func (d *Dispatcher) DispatchPayoutEvent(ctx context.Context, event payout.StatusChanged) {
	msg, ok := d.renderPayoutEvent(event)
	if !ok {
		return
	}
	d.deliver(ctx, msg)
}

func (d *Dispatcher) renderJobEvent(event job.StatusChanged) (message, bool) {
	msg := message{
		recipientID: event.DispensaryID,
		role:        notification.RoleOwner,
		kind:        notification.TypeShipment,
		priority:    notification.PriorityNormal,
		entityID:    event.JobID,
	}

	switch event.NewStatus {
	case job.Claimed:
		msg.title = "Delivery claimed"
		msg.body = "A driver has claimed the delivery and is heading to your store."
	case job.PickedUp:
		msg.title = "Order picked up"
		msg.body = "The driver has collected the order from your store."
	case job.EnRoute:
		msg.title = "Delivery en route"
		msg.body = "The driver is on the way to the customer."
	case job.Nearby:
		msg.title = "Driver nearby"
		msg.body = "The driver is close to the delivery address."
	case job.Arrived:
		msg.title = "Driver arrived"
		msg.body = "The driver has arrived at the delivery address."
	case job.Delivered:
		msg.title = "Order delivered"
		msg.body = "The order has been handed to the customer."
	case job.Failed:
		msg.title = "Delivery failed"
		msg.body = "The delivery could not be completed."
		if event.Payable != nil && *event.Payable {
			msg.body = "The delivery could not be completed. The driver's earnings remain payable."
		}
		msg.priority = notification.PriorityHigh
	default:
		return message{}, false
	}

	return msg, true
}

func (d *Dispatcher) renderPayoutEvent(event payout.StatusChanged) (message, bool) {
	msg := message{
		kind:     notification.TypePayout,
		priority: notification.PriorityNormal,
		entityID: event.RequestID,
	}

	switch event.NewStatus {
	case payout.Pending:
		msg.recipientID = event.DispensaryID
		msg.role = notification.RoleOwner
		msg.title = "New payout request"
		msg.body = fmt.Sprintf("A driver requested a payout of R%s.", event.Amount.String())
	case payout.Approved:
		msg.recipientID = event.DriverID
		msg.role = notification.RoleDriver
		msg.title = "Payout approved"
		msg.body = fmt.Sprintf("Your payout of R%s was approved and will be paid shortly.", event.Amount.String())
	case payout.Rejected:
		msg.recipientID = event.DriverID
		msg.role = notification.RoleDriver
		msg.title = "Payout rejected"
		msg.body = fmt.Sprintf("Your payout of R%s was rejected: %s", event.Amount.String(), event.RejectionReason)
		msg.priority = notification.PriorityHigh
	case payout.Paid:
		msg.recipientID = event.DriverID
		msg.role = notification.RoleDriver
		msg.title = "Payout paid"
		msg.body = fmt.Sprintf("Your payout of R%s has been paid to your bank account.", event.Amount.String())
	default:
		return message{}, false
	}

	return msg, true
}

// deliver writes the notification row once, then attempts push delivery.
func (d *Dispatcher) deliver(ctx context.Context, msg message) {
	entity, created, err := d.store(ctx, msg)
	if err != nil {
		d.logger.Error("notification row write failed",
			"entity_id", msg.entityID.String(),
			"type", msg.kind.String(),
			"error", err)
		return
	}
	if !created {
		return
	}

	d.push(ctx, entity)
}

// store persists the row unless an identical one exists. Returns the stored
// entity and whether this call created it.
func (d *Dispatcher) store(ctx context.Context, msg message) (*notification.Notification, bool, error) {
	entity, err := notification.NewNotification(
		kernel.NewUUID(),
		msg.recipientID,
		msg.role,
		msg.kind,
		msg.title,
		msg.body,
		msg.priority,
		msg.entityID,
		d.now().UTC(),
	)
	if err != nil {
		return nil, false, err
	}

	uow := d.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	exists, err := uow.NotificationRepository().ExistsForEntity(
		ctx, msg.recipientID, msg.entityID, msg.kind, msg.title)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	if err = uow.NotificationRepository().Add(ctx, entity); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return entity, true, nil
}

// push sends the notification to the recipient's devices and prunes tokens
// the provider reports as dead.
func (d *Dispatcher) push(ctx context.Context, entity *notification.Notification) {
	tokens, err := d.registry.Tokens(ctx, entity.Recipient())
	if err != nil {
		d.logger.Error("token lookup failed",
			"recipient_id", entity.Recipient().String(),
			"error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	results, err := d.sender.SendPush(ctx, entity, tokens)
	if err != nil {
		d.logger.Error("push send failed",
			"recipient_id", entity.Recipient().String(),
			"error", err)
		return
	}

	for _, result := range results {
		switch {
		case result.Unregistered:
			if removeErr := d.registry.Remove(ctx, entity.Recipient(), result.Token); removeErr != nil {
				d.logger.Warn("dead token prune failed",
					"recipient_id", entity.Recipient().String(),
					"error", removeErr)
			}
		case result.Err != nil:
			d.logger.Warn("push delivery failed for token",
				"recipient_id", entity.Recipient().String(),
				"error", result.Err)
		}
	}
}
