// Package amqp consumes marketplace events from the broker. Order creation
// opens delivery jobs; payment and third-party shipment events become owner
// notifications through the dispatcher's idempotent pipeline.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "marketplace.events"
	queueName    = "dispatch.marketplace"
	prefetch     = 50
)

// Announcer receives pre-rendered notifications for events that do not map
// to a delivery use case.
type Announcer interface {
	Announce(ctx context.Context, a notifications.Announcement)
}

// Consumer reads marketplace events off the broker and feeds them into the
// application layer.
type Consumer struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	createJob *commands.CreateJobCommandHandler
	announcer Announcer
	logger    *slog.Logger
	done      chan struct{}
}

// NewConsumer dials the broker and prepares the dispatch queue.
func NewConsumer(
	url string,
	createJob *commands.CreateJobCommandHandler,
	announcer Announcer,
	logger *slog.Logger,
) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err = declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:      conn,
		channel:   channel,
		createJob: createJob,
		announcer: announcer,
		logger:    logger.With("component", "marketplace-consumer"),
		done:      make(chan struct{}),
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	if err := channel.ExchangeDeclare(
		exchangeName, "topic", true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := channel.QueueDeclare(
		queueName, true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range []string{
		routingOrderCreated, routingPaymentCompleted, routingShipmentStatusChd,
	} {
		if err := channel.QueueBind(queueName, key, exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	return nil
}

// Start begins consuming in a background goroutine. The loop exits when the
// context is cancelled or the channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go c.loop(ctx, deliveries)
	c.logger.Info("marketplace consumer started", "queue", queueName)
	return nil
}

// Close tears down the broker connection and waits for the loop to exit.
func (c *Consumer) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Consumer) loop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed")
				return
			}
			c.handle(ctx, delivery)
		}
	}
}

// handle acks messages that were processed or can never be processed;
// transient failures are requeued.
func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	err := c.route(ctx, delivery)
	switch {
	case err == nil:
		_ = delivery.Ack(false)
	case isPermanent(err):
		c.logger.Warn("dropping unprocessable event",
			"routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, false)
	default:
		c.logger.Error("event processing failed, requeueing",
			"routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, true)
	}
}

// isPermanent reports whether retrying the message can never succeed.
func isPermanent(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func (c *Consumer) route(ctx context.Context, delivery amqp.Delivery) error {
	switch delivery.RoutingKey {
	case routingOrderCreated:
		return c.handleOrderCreated(ctx, delivery.Body)
	case routingPaymentCompleted:
		return c.handlePaymentCompleted(ctx, delivery.Body)
	case routingShipmentStatusChd:
		return c.handleShipmentStatusChanged(ctx, delivery.Body)
	default:
		c.logger.Warn("unknown routing key", "routing_key", delivery.RoutingKey)
		return nil
	}
}

func (c *Consumer) handleOrderCreated(ctx context.Context, body []byte) error {
	var event orderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	if event.Shipment.FulfillmentMethod != fulfillmentDriver {
		return nil
	}

	cmd, err := buildCreateJobCommand(event)
	if err != nil {
		return err
	}

	err = c.createJob.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrConflict) {
		// Redelivered event; the job already exists.
		return nil
	}
	return err
}

// buildCreateJobCommand maps the wire payload onto domain values. The
// shipment id doubles as the job id so redeliveries collide instead of
// duplicating jobs.
func buildCreateJobCommand(event orderCreatedEvent) (commands.CreateJobCommand, error) {
	jobID, err := kernel.UUIDFromString(event.Shipment.ID)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}
	dispensaryID, err := kernel.UUIDFromString(event.DispensaryID)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}

	pickup, err := buildAddress(event.Shipment.Pickup)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}
	dropoff, err := buildAddress(event.Shipment.Dropoff)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}

	customer, err := job.NewContact(event.Shipment.Customer.Name, event.Shipment.Customer.Phone)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}
	earnings, err := kernel.MoneyFromString(event.Shipment.QuotedEarnings)
	if err != nil {
		return commands.CreateJobCommand{}, err
	}

	return commands.NewCreateJobCommand(
		jobID, orderID, dispensaryID, pickup, dropoff, customer, earnings)
}

func buildAddress(payload addressPayload) (kernel.Address, error) {
	position, err := kernel.NewGeoPoint(payload.Latitude, payload.Longitude)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(payload.Street, payload.City, payload.Suburb, position)
}

func (c *Consumer) handlePaymentCompleted(ctx context.Context, body []byte) error {
	var event paymentCompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	ownerID, err := kernel.UUIDFromString(event.OwnerID)
	if err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return err
	}

	c.announcer.Announce(ctx, notifications.Announcement{
		RecipientID: ownerID,
		Role:        notification.RoleOwner,
		Kind:        notification.TypePayment,
		Title:       "Payment received",
		Body:        fmt.Sprintf("Payment of R%s for order %s has been captured.", event.Amount, event.OrderID),
		Priority:    notification.PriorityNormal,
		EntityID:    orderID,
	})
	return nil
}

func (c *Consumer) handleShipmentStatusChanged(ctx context.Context, body []byte) error {
	var event shipmentStatusChangedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	ownerID, err := kernel.UUIDFromString(event.OwnerID)
	if err != nil {
		return err
	}
	shipmentID, err := kernel.UUIDFromString(event.ShipmentID)
	if err != nil {
		return err
	}

	c.announcer.Announce(ctx, notifications.Announcement{
		RecipientID: ownerID,
		Role:        notification.RoleOwner,
		Kind:        notification.TypeShipment,
		Title:       fmt.Sprintf("Shipment %s", strings.ReplaceAll(event.New, "_", " ")),
		Body: fmt.Sprintf("Shipment for order %s moved from %s to %s.",
			event.OrderID, event.Previous, event.New),
		Priority: notification.PriorityNormal,
		EntityID: shipmentID,
	})
	return nil
}
