package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
)

// CreateJobCommandHandler handles the business logic for opening delivery
// jobs. New jobs land on the board in unclaimed status.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job creation command.
// Uses a transaction to ensure the job is properly persisted or rolled back
// on error.
func (h *CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
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

	aggregate, err := job.NewDeliveryJob(
		cmd.JobID(),
		cmd.OrderID(),
		cmd.DispensaryID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.Customer(),
		cmd.QuotedEarnings(),
	)
	if err != nil {
		return err
	}

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
