package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceJobCommandIsNotConstructed = errors.New(
	"AdvanceJobCommand must be created via NewAdvanceJobCommand constructor",
)

// AdvanceJobCommand represents the assigned driver moving their job one step
// forward along the delivery lifecycle. Claiming, completing, and failing
// have their own commands; this one covers the intermediate stops.
type AdvanceJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID
	target   job.Status

	guard guard.ConstructorGuard
}

// NewAdvanceJobCommand creates a command to advance a job to the target
// status.
func NewAdvanceJobCommand(jobID, driverID kernel.UUID, target job.Status) (AdvanceJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
		target.Validate(),
	); err != nil {
		return AdvanceJobCommand{}, err
	}

	return AdvanceJobCommand{
		jobID:    jobID,
		driverID: driverID,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceJobCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceJobCommandIsNotConstructed)
}

// JobID returns the job being advanced.
func (c AdvanceJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// DriverID returns the acting driver.
func (c AdvanceJobCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Target returns the requested status.
func (c AdvanceJobCommand) Target() job.Status {
	return c.target
}
