package commands

import (
	"context"
	"time"
)

// ClaimJobCommandHandler handles the business logic for claiming delivery
// jobs. The claim is atomic: the load and the compare-and-swap update run in
// one transaction, so of two concurrent claimants exactly one succeeds and
// the other receives a conflict.
//
// Example:
//
//	handler := NewClaimJobCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewClaimJobCommand(jobID, driverID)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, job.ErrAlreadyClaimed) {
//	    // another driver got there first
//	}
type ClaimJobCommandHandler struct {
	uowFactory JobUoWFactory
	dispatcher EventDispatcher
}

// NewClaimJobCommandHandler creates a handler for job claim operations.
func NewClaimJobCommandHandler(uowFactory JobUoWFactory, dispatcher EventDispatcher) ClaimJobCommandHandler {
	return ClaimJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the claim command. On success the job's status change is
// handed to the event dispatcher after commit.
func (h *ClaimJobCommandHandler) Handle(ctx context.Context, cmd ClaimJobCommand) error {
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

	if err = aggregate.Claim(cmd.DriverID(), time.Now()); err != nil {
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
