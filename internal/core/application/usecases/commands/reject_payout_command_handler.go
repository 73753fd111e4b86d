package commands

import (
	"context"
	"time"
)

// RejectPayoutCommandHandler handles the business logic for rejecting payout
// requests.
type RejectPayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	dispatcher EventDispatcher
}

// NewRejectPayoutCommandHandler creates a handler for payout rejection
// operations.
func NewRejectPayoutCommandHandler(uowFactory PayoutUoWFactory, dispatcher EventDispatcher) RejectPayoutCommandHandler {
	return RejectPayoutCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the rejection command.
func (h *RejectPayoutCommandHandler) Handle(ctx context.Context, cmd RejectPayoutCommand) error {
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

	payoutRepo := uow.PayoutRepository()
	aggregate, err := payoutRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if !aggregate.Dispensary().IsEqual(cmd.DispensaryID()) {
		return ErrForeignPayoutRequest
	}

	if err = aggregate.Reject(cmd.RejecterID(), cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if err = payoutRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range aggregate.DomainEvents() {
		h.dispatcher.DispatchPayoutEvent(ctx, event)
	}
	aggregate.ClearDomainEvents()

	return nil
}
