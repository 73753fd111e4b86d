package payout

import (
	"dispatch/internal/core/domain/model/kernel"
)

// StatusChanged is the domain event recorded on every successful transition
// of a payout request. The notification dispatcher consumes these after the
// transition commits; the (RequestID, NewStatus) pair is its idempotency
// scope.
type StatusChanged struct {
	RequestID    kernel.UUID
	DriverID     kernel.UUID
	DispensaryID kernel.UUID
	NewStatus    Status
	Amount       kernel.Money

	// RejectionReason is set only for transitions into Rejected.
	RejectionReason string
}
