package commands

import (
	"context"
)

// FailJobCommandHandler handles the business logic for failing deliveries.
// Alongside the status change the job's location feed is pruned in the same
// transaction, since a terminal job has no further use for position history.
type FailJobCommandHandler struct {
	uowFactory TrackedJobUoWFactory
	dispatcher EventDispatcher
}

// NewFailJobCommandHandler creates a handler for job failure operations.
func NewFailJobCommandHandler(uowFactory TrackedJobUoWFactory, dispatcher EventDispatcher) FailJobCommandHandler {
	return FailJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the failure command. The dispatched event carries the
// payability verdict derived from the reason code.
func (h *FailJobCommandHandler) Handle(ctx context.Context, cmd FailJobCommand) error {
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

	if err = aggregate.MarkFailed(cmd.DriverID(), cmd.Reason(), cmd.Note(), cmd.EvidenceRefs()); err != nil {
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
