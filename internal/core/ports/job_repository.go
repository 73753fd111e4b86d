// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and outbound gateways.
// Adapters implement these; the core depends only on the interfaces.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for delivery job aggregates.
type JobRepository interface {
	// Add persists a new delivery job. The job must be valid and not
	// already exist.
	Add(ctx context.Context, aggregate *job.DeliveryJob) error

	// Update persists changes to an existing job using compare-and-swap on
	// the aggregate version. Returns errs.ErrConflict when the stored
	// version no longer matches, meaning another transaction changed the
	// job first.
	Update(ctx context.Context, aggregate *job.DeliveryJob) error

	// Get retrieves a job by its identifier. Returns
	// errs.ErrObjectNotFound when no such job exists.
	Get(ctx context.Context, id kernel.UUID) (*job.DeliveryJob, error)

	// GetUnclaimed retrieves jobs awaiting a driver, oldest first.
	GetUnclaimed(ctx context.Context, dispensaryID kernel.UUID) ([]*job.DeliveryJob, error)

	// GetActiveByDriver retrieves the driver's job in a tracking status,
	// if any. A driver holds at most one such job at a time. Returns
	// errs.ErrObjectNotFound when the driver has no active delivery.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*job.DeliveryJob, error)

	// GetTerminalByDriver retrieves the driver's delivered and failed
	// jobs, newest first.
	GetTerminalByDriver(ctx context.Context, driverID kernel.UUID) ([]*job.DeliveryJob, error)

	// GetTerminalForDriverAndDispensary retrieves the driver's delivered
	// and failed jobs for one dispensary. Used to derive the payable
	// balance.
	GetTerminalForDriverAndDispensary(ctx context.Context, driverID, dispensaryID kernel.UUID) ([]*job.DeliveryJob, error)
}
