package job

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLocationSampleIsNotConstructed occurs when a LocationSample is used
// without the NewLocationSample constructor.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"location sample must be created via NewLocationSample constructor")

// LocationSample is one driver position report for a delivery job in a
// tracking status. Samples form an append-only feed; they carry no lifecycle
// of their own and are pruned wholesale once the job leaves tracking.
type LocationSample struct {
	jobID      kernel.UUID
	driverID   kernel.UUID
	position   kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewLocationSample creates a position report for a job.
func NewLocationSample(jobID, driverID kernel.UUID, position kernel.GeoPoint, recordedAt time.Time) (LocationSample, error) {
	if err := jobID.Validate(); err != nil {
		return LocationSample{}, err
	}
	if err := driverID.Validate(); err != nil {
		return LocationSample{}, err
	}
	if err := position.Validate(); err != nil {
		return LocationSample{}, err
	}

	return LocationSample{
		jobID:      jobID,
		driverID:   driverID,
		position:   position,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (s LocationSample) JobID() kernel.UUID {
	return s.jobID
}

func (s LocationSample) DriverID() kernel.UUID {
	return s.driverID
}

func (s LocationSample) Position() kernel.GeoPoint {
	return s.position
}

func (s LocationSample) RecordedAt() time.Time {
	return s.recordedAt
}

// Validate ensures the sample was built through the constructor.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}
