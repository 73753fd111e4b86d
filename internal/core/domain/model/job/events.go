package job

import (
	"dispatch/internal/core/domain/model/kernel"
)

// StatusChanged is the domain event recorded on every successful transition
// of a delivery job. The notification dispatcher consumes these after the
// transition commits; the (JobID, NewStatus) pair is its idempotency scope.
type StatusChanged struct {
	JobID        kernel.UUID
	OrderID      kernel.UUID
	DispensaryID kernel.UUID
	DriverID     kernel.UUID
	NewStatus    Status

	// Payable is set only for transitions into Failed and carries the
	// policy-derived disposition of the job's earnings.
	Payable *bool
}
