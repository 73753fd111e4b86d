package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimJobCommandIsNotConstructed = errors.New(
	"ClaimJobCommand must be created via NewClaimJobCommand constructor",
)

// ClaimJobCommand represents a driver's request to take an unclaimed job off
// the board. At most one driver wins; concurrent claims lose with a conflict.
type ClaimJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimJobCommand creates a command for a driver to claim a job.
func NewClaimJobCommand(jobID, driverID kernel.UUID) (ClaimJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
	); err != nil {
		return ClaimJobCommand{}, err
	}

	return ClaimJobCommand{
		jobID:    jobID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimJobCommand) Validate() error {
	return c.guard.Validate(ErrClaimJobCommandIsNotConstructed)
}

// JobID returns the job being claimed.
func (c ClaimJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// DriverID returns the claiming driver.
func (c ClaimJobCommand) DriverID() kernel.UUID {
	return c.driverID
}
