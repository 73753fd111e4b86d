package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to open a new delivery job for a
// dispensary order. Jobs start unclaimed on the job board.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(
//	    kernel.NewUUID(), orderID, dispensaryID,
//	    pickup, dropoff, customer, quotedEarnings,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//
//	handler := NewCreateJobCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create job: %w", err)
//	}
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID          kernel.UUID
	orderID        kernel.UUID
	dispensaryID   kernel.UUID
	pickup         kernel.Address
	dropoff        kernel.Address
	customer       job.Contact
	quotedEarnings kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to open a delivery job.
// All identifiers, both addresses, the customer contact, and the quoted
// earnings must be valid.
func NewCreateJobCommand(
	jobID kernel.UUID,
	orderID kernel.UUID,
	dispensaryID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	customer job.Contact,
	quotedEarnings kernel.Money,
) (CreateJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		orderID.Validate(),
		dispensaryID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		customer.Validate(),
		quotedEarnings.Validate(),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return CreateJobCommand{
		jobID:          jobID,
		orderID:        orderID,
		dispensaryID:   dispensaryID,
		pickup:         pickup,
		dropoff:        dropoff,
		customer:       customer,
		quotedEarnings: quotedEarnings,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the identifier for the new job.
func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// OrderID returns the marketplace order the job fulfils.
func (c CreateJobCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DispensaryID returns the dispensary that owns the order.
func (c CreateJobCommand) DispensaryID() kernel.UUID {
	return c.dispensaryID
}

// Pickup returns the pickup address.
func (c CreateJobCommand) Pickup() kernel.Address {
	return c.pickup
}

// Dropoff returns the delivery address.
func (c CreateJobCommand) Dropoff() kernel.Address {
	return c.dropoff
}

// Customer returns the recipient contact.
func (c CreateJobCommand) Customer() job.Contact {
	return c.customer
}

// QuotedEarnings returns the driver earnings quoted for the job.
func (c CreateJobCommand) QuotedEarnings() kernel.Money {
	return c.quotedEarnings
}
