package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRejectPayoutCommandIsNotConstructed = errors.New(
		"RejectPayoutCommand must be created via NewRejectPayoutCommand constructor",
	)
	ErrRejectionReasonIsRequired = errors.New("rejection reason is required")
)

// RejectPayoutCommand represents a dispensary owner declining a pending
// payout request. Rejection releases the locked amount back into the
// driver's balance.
type RejectPayoutCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	dispensaryID kernel.UUID
	rejecterID   kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewRejectPayoutCommand creates a command to reject a payout request.
// The reason is mandatory; the driver sees it.
func NewRejectPayoutCommand(
	requestID kernel.UUID,
	dispensaryID kernel.UUID,
	rejecterID kernel.UUID,
	reason string,
) (RejectPayoutCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		dispensaryID.Validate(),
		rejecterID.Validate(),
	); err != nil {
		return RejectPayoutCommand{}, err
	}
	if reason == "" {
		return RejectPayoutCommand{}, ErrRejectionReasonIsRequired
	}

	return RejectPayoutCommand{
		requestID:    requestID,
		dispensaryID: dispensaryID,
		rejecterID:   rejecterID,
		reason:       reason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRejectPayoutCommandIsNotConstructed)
}

// RequestID returns the request being rejected.
func (c RejectPayoutCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DispensaryID returns the dispensary the acting owner belongs to.
func (c RejectPayoutCommand) DispensaryID() kernel.UUID {
	return c.dispensaryID
}

// RejecterID returns the acting owner.
func (c RejectPayoutCommand) RejecterID() kernel.UUID {
	return c.rejecterID
}

// Reason returns the rejection reason shown to the driver.
func (c RejectPayoutCommand) Reason() string {
	return c.reason
}
