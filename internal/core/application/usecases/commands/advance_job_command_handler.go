package commands

import (
	"context"
)

// AdvanceJobCommandHandler handles the business logic for intermediate
// status transitions. The aggregate rejects skips and transitions by anyone
// but the assigned driver; the compare-and-swap update turns concurrent
// writes into conflicts.
type AdvanceJobCommandHandler struct {
	uowFactory JobUoWFactory
	dispatcher EventDispatcher
}

// NewAdvanceJobCommandHandler creates a handler for job advance operations.
func NewAdvanceJobCommandHandler(uowFactory JobUoWFactory, dispatcher EventDispatcher) AdvanceJobCommandHandler {
	return AdvanceJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the advance command. On success the status change is
// handed to the event dispatcher after commit.
func (h *AdvanceJobCommandHandler) Handle(ctx context.Context, cmd AdvanceJobCommand) error {
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

	if err = aggregate.Advance(cmd.DriverID(), cmd.Target()); err != nil {
		return err
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
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
