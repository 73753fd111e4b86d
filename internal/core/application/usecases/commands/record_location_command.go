package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor",
)

// RecordLocationCommand represents one position report from the assigned
// driver's device while the job is in a tracking status.
type RecordLocationCommand struct { //nolint:recvcheck //using for validation
	jobID      kernel.UUID
	driverID   kernel.UUID
	position   kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordLocationCommand creates a command to append a position sample to
// a job's tracking feed.
func NewRecordLocationCommand(
	jobID kernel.UUID,
	driverID kernel.UUID,
	position kernel.GeoPoint,
	recordedAt time.Time,
) (RecordLocationCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
		position.Validate(),
	); err != nil {
		return RecordLocationCommand{}, err
	}

	return RecordLocationCommand{
		jobID:      jobID,
		driverID:   driverID,
		position:   position,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

// JobID returns the tracked job.
func (c RecordLocationCommand) JobID() kernel.UUID {
	return c.jobID
}

// DriverID returns the reporting driver.
func (c RecordLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Position returns the reported coordinates.
func (c RecordLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

// RecordedAt returns the device-side timestamp of the sample.
func (c RecordLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}
