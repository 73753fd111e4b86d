package commands

import (
	"context"
	"time"
)

// CompleteJobCommandHandler handles the business logic for delivery
// completion. Completion makes the quoted earnings payable and, like
// failure, prunes the job's location feed in the same transaction.
type CompleteJobCommandHandler struct {
	uowFactory TrackedJobUoWFactory
	dispatcher EventDispatcher
}

// NewCompleteJobCommandHandler creates a handler for job completion
// operations.
func NewCompleteJobCommandHandler(uowFactory TrackedJobUoWFactory, dispatcher EventDispatcher) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the completion command.
func (h *CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
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

	jobRepo := uow.JobRepository()
	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = aggregate.Complete(cmd.DriverID(), cmd.Rating(), cmd.Feedback(), time.Now()); err != nil {
		return err
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.LocationRepository().DeleteForJob(ctx, cmd.JobID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range aggregate.DomainEvents() {
		h.dispatcher.DispatchJobEvent(ctx, event)
	}
	aggregate.ClearDomainEvents()

	return nil
}
