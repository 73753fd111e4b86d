package commands

import (
	"context"
	"time"
)

// MarkPayoutPaidCommandHandler handles the business logic for settling
// approved payout requests.
type MarkPayoutPaidCommandHandler struct {
	uowFactory PayoutUoWFactory
	dispatcher EventDispatcher
}

// NewMarkPayoutPaidCommandHandler creates a handler for payout settlement
// operations.
func NewMarkPayoutPaidCommandHandler(uowFactory PayoutUoWFactory, dispatcher EventDispatcher) MarkPayoutPaidCommandHandler {
	return MarkPayoutPaidCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the settlement command.
func (h *MarkPayoutPaidCommandHandler) Handle(ctx context.Context, cmd MarkPayoutPaidCommand) error {
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

	if err = aggregate.MarkPaid(cmd.ActorID(), time.Now()); err != nil {
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
