package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand represents the assigned driver confirming handover to
// the customer. Completion requires a rating; feedback text is optional.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID
	rating   job.DeliveryRating
	feedback string

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a command to complete a delivery job.
func NewCompleteJobCommand(
	jobID kernel.UUID,
	driverID kernel.UUID,
	rating job.DeliveryRating,
	feedback string,
) (CompleteJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
		rating.Validate(),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return CompleteJobCommand{
		jobID:    jobID,
		driverID: driverID,
		rating:   rating,
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// JobID returns the job being completed.
func (c CompleteJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// DriverID returns the acting driver.
func (c CompleteJobCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Rating returns the delivery rating.
func (c CompleteJobCommand) Rating() job.DeliveryRating {
	return c.rating
}

// Feedback returns the optional free-text feedback.
func (c CompleteJobCommand) Feedback() string {
	return c.feedback
}
