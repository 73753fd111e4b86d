package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
)

// ErrJobNotTracking is returned when a position sample arrives for a job
// that is not between claim and arrival. Samples for unclaimed or terminal
// jobs are rejected, not silently dropped.
var ErrJobNotTracking = errs.NewConflictError(
	"delivery job is not in a tracking status")

// RecordLocationCommandHandler handles the business logic for the driver
// position feed. Only the assigned driver may report, and only while the job
// is in a tracking status; the feed itself is append-only.
type RecordLocationCommandHandler struct {
	uowFactory TrackedJobUoWFactory
}

// NewRecordLocationCommandHandler creates a handler for position reporting.
func NewRecordLocationCommandHandler(uowFactory TrackedJobUoWFactory) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position report.
func (h *RecordLocationCommandHandler) Handle(ctx context.Context, cmd RecordLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsTracking() {
		return ErrJobNotTracking
	}
	if driver := aggregate.Driver(); driver == nil || !driver.IsEqual(cmd.DriverID()) {
		return job.ErrNotAssignedDriver
	}

	sample, err := job.NewLocationSample(cmd.JobID(), cmd.DriverID(), cmd.Position(), cmd.RecordedAt())
	if err != nil {
		return err
	}

	if err = uow.LocationRepository().Append(ctx, sample); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
