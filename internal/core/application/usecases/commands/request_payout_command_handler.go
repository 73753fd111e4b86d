package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrInsufficientBalance is returned when the requested amount exceeds
	// the driver's available balance at the dispensary.
	ErrInsufficientBalance = errs.NewConflictError(
		"requested amount exceeds the available payable balance")

	// ErrDuplicatePending is returned when the driver already has a pending
	// request at the dispensary. One pending request at a time keeps the
	// locked amount unambiguous.
	ErrDuplicatePending = errs.NewConflictError(
		"driver already has a pending payout request at this dispensary")
)

// RequestPayoutCommandHandler handles the business logic for opening payout
// requests. The duplicate-pending check here gives the caller a clear error
// on the common path; the race between two simultaneous requests is closed by
// the partial unique index on pending (driver, dispensary) rows, which
// surfaces as errs.ErrConflict from the insert.
//
// Example:
//
//	handler := NewRequestPayoutCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewRequestPayoutCommand(requestID, driverID, dispensaryID, amount, bank)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrInsufficientBalance) {
//	    // ask for less
//	}
type RequestPayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	calculator services.BalanceCalculator
	dispatcher EventDispatcher
}

// NewRequestPayoutCommandHandler creates a handler for payout request
// operations.
func NewRequestPayoutCommandHandler(uowFactory PayoutUoWFactory, dispatcher EventDispatcher) RequestPayoutCommandHandler {
	return RequestPayoutCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewBalanceCalculator(),
		dispatcher: dispatcher,
	}
}

// Handle processes the payout request command.
func (h *RequestPayoutCommandHandler) Handle(ctx context.Context, cmd RequestPayoutCommand) error {
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
	hasPending, err := payoutRepo.HasPendingForDriverAndDispensary(ctx, cmd.DriverID(), cmd.DispensaryID())
	if err != nil {
		return err
	}
	if hasPending {
		return ErrDuplicatePending
	}

	jobs, err := uow.JobRepository().GetTerminalForDriverAndDispensary(ctx, cmd.DriverID(), cmd.DispensaryID())
	if err != nil {
		return err
	}

	requests, err := payoutRepo.GetByDriverAndDispensary(ctx, cmd.DriverID(), cmd.DispensaryID())
	if err != nil {
		return err
	}

	balance, err := h.calculator.Calculate(jobs, requests)
	if err != nil {
		return err
	}
	if cmd.Amount().GreaterThan(balance.Available) {
		return ErrInsufficientBalance
	}

	aggregate, err := payout.NewPayoutRequest(
		cmd.RequestID(),
		cmd.DriverID(),
		cmd.DispensaryID(),
		cmd.Amount(),
		balance.DeliveredCount+balance.FailedPayableCount,
		cmd.Bank(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = payoutRepo.Add(ctx, aggregate); err != nil {
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
