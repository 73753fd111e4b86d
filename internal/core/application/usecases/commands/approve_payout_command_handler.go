package commands

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"
)

// ErrForeignPayoutRequest is returned when an owner acts on a payout request
// that belongs to another dispensary.
var ErrForeignPayoutRequest = errs.NewForbiddenError(
	"payout request belongs to another dispensary")

// ApprovePayoutCommandHandler handles the business logic for approving
// payout requests. Only the owning dispensary may approve, and only while
// the request is still pending.
type ApprovePayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	dispatcher EventDispatcher
}

// NewApprovePayoutCommandHandler creates a handler for payout approval
// operations.
func NewApprovePayoutCommandHandler(uowFactory PayoutUoWFactory, dispatcher EventDispatcher) ApprovePayoutCommandHandler {
	return ApprovePayoutCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the approval command.
func (h *ApprovePayoutCommandHandler) Handle(ctx context.Context, cmd ApprovePayoutCommand) error {
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

	if err = aggregate.Approve(cmd.ApproverID(), cmd.PaymentReference(), time.Now()); err != nil {
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
