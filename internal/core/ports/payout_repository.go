package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
)

// PayoutRepository defines the persistence contract for payout request
// aggregates.
type PayoutRepository interface {
	// Add persists a new payout request.
	Add(ctx context.Context, aggregate *payout.PayoutRequest) error

	// Update persists changes to an existing request using compare-and-swap
	// on the aggregate version. Returns errs.ErrConflict when the stored
	// version no longer matches.
	Update(ctx context.Context, aggregate *payout.PayoutRequest) error

	// Get retrieves a request by its identifier. Returns
	// errs.ErrObjectNotFound when no such request exists.
	Get(ctx context.Context, id kernel.UUID) (*payout.PayoutRequest, error)

	// GetByDriverAndDispensary retrieves all of the driver's requests for
	// one dispensary, any status, newest first. Together with the terminal
	// jobs this is the input to the balance calculator.
	GetByDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) ([]*payout.PayoutRequest, error)

	// GetByDispensaryAndStatus retrieves a dispensary's requests in the
	// given status, oldest first. Drives the owner's review list.
	GetByDispensaryAndStatus(ctx context.Context, dispensaryID kernel.UUID, status payout.Status) ([]*payout.PayoutRequest, error)

	// HasPendingForDriverAndDispensary reports whether the driver already
	// has a pending request at the dispensary.
	HasPendingForDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) (bool, error)
}
