package services

import (
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/errs"
)

// ErrBalanceOverdrawn is returned when the amount locked in payout requests
// exceeds the driver's total payable earnings. A consistent ledger never
// produces this; it indicates corrupted or partially-migrated data.
var ErrBalanceOverdrawn = errs.NewConflictError(
	"locked payout amount exceeds total payable earnings")

// Balance is a driver's derived payable balance for one dispensary.
// It is computed on demand from the job ledger and the payout request
// history; it is never stored.
type Balance struct {
	// Earned is the sum of quoted earnings across delivered jobs and
	// payable failed jobs.
	Earned kernel.Money

	// Locked is the sum of amounts in pending, approved, and paid payout
	// requests. Pending requests lock their amount immediately so a second
	// request cannot spend the same earnings; rejected requests release it.
	Locked kernel.Money

	// Available is Earned minus Locked: the amount a new payout request may
	// claim.
	Available kernel.Money

	// DeliveredCount and FailedPayableCount break down where Earned came
	// from.
	DeliveredCount     int
	FailedPayableCount int
}

// BalanceCalculator is a domain service that derives a driver's payable
// balance from their terminal jobs and payout request history.
//
// Business rules:
//   - A delivered job always pays its quoted earnings.
//   - A failed job pays unless the failure was driver-side.
//   - Jobs still in flight contribute nothing.
//   - Every non-rejected payout request locks its amount, including requests
//     that were already paid out.
type BalanceCalculator struct{}

// NewBalanceCalculator creates a new BalanceCalculator instance.
func NewBalanceCalculator() BalanceCalculator {
	return BalanceCalculator{}
}

// Calculate derives the balance from the given jobs and payout requests.
//
// Parameters:
//   - jobs: the driver's jobs for the dispensary; non-terminal and unpaid
//     entries are skipped, so callers may pass the full history.
//   - requests: the driver's payout requests for the dispensary, any status.
//
// Returns:
//   - Balance: the derived earned/locked/available amounts and counts.
//   - error: validation errors, or ErrBalanceOverdrawn when locked exceeds
//     earned.
func (BalanceCalculator) Calculate(jobs []*job.DeliveryJob, requests []*payout.PayoutRequest) (Balance, error) {
	earned := kernel.ZeroMoney()
	deliveredCount := 0
	failedPayableCount := 0

	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return Balance{}, err
		}
		if !j.EarningsPayable() {
			continue
		}

		earned = earned.Add(j.QuotedEarnings())
		if j.Status() == job.Delivered {
			deliveredCount++
		} else {
			failedPayableCount++
		}
	}

	locked := kernel.ZeroMoney()
	for _, r := range requests {
		if err := r.Validate(); err != nil {
			return Balance{}, err
		}
		if !r.LocksBalance() {
			continue
		}
		locked = locked.Add(r.Amount())
	}

	if locked.GreaterThan(earned) {
		return Balance{}, ErrBalanceOverdrawn
	}

	return Balance{
		Earned:             earned,
		Locked:             locked,
		Available:          earned.Sub(locked),
		DeliveredCount:     deliveredCount,
		FailedPayableCount: failedPayableCount,
	}, nil
}
