package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// GetDriverBalanceQueryHandler derives a driver's balance on demand.
//
// Unlike the other query handlers this one goes through the repositories
// rather than raw SQL: payability of a failed job is a policy decision owned
// by the domain layer, and summing in SQL would mean teaching the database
// which failure reasons pay. The read is not transactional; a request
// committed between the two loads only makes the answer momentarily stale,
// never wrong for the enforcement path, which re-derives inside its own
// transaction.
type GetDriverBalanceQueryHandler struct {
	jobs       ports.JobRepository
	payouts    ports.PayoutRepository
	calculator services.BalanceCalculator
}

// NewGetDriverBalanceQueryHandler creates a handler for balance queries.
func NewGetDriverBalanceQueryHandler(jobs ports.JobRepository, payouts ports.PayoutRepository) GetDriverBalanceQueryHandler {
	return GetDriverBalanceQueryHandler{
		jobs:       jobs,
		payouts:    payouts,
		calculator: services.NewBalanceCalculator(),
	}
}

// Handle executes the query.
func (h GetDriverBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetDriverBalanceQuery,
) (GetDriverBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverBalanceQueryResponse{}, err
	}

	jobs, err := h.jobs.GetTerminalForDriverAndDispensary(ctx, query.DriverID(), query.DispensaryID())
	if err != nil {
		return GetDriverBalanceQueryResponse{}, err
	}

	requests, err := h.payouts.GetByDriverAndDispensary(ctx, query.DriverID(), query.DispensaryID())
	if err != nil {
		return GetDriverBalanceQueryResponse{}, err
	}

	balance, err := h.calculator.Calculate(jobs, requests)
	if err != nil {
		return GetDriverBalanceQueryResponse{}, err
	}

	return GetDriverBalanceQueryResponse{
		Earned:             balance.Earned.String(),
		Locked:             balance.Locked.String(),
		Available:          balance.Available.String(),
		DeliveredCount:     balance.DeliveredCount,
		FailedPayableCount: balance.FailedPayableCount,
	}, nil
}
