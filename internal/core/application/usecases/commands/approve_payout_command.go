package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrApprovePayoutCommandIsNotConstructed = errors.New(
		"ApprovePayoutCommand must be created via NewApprovePayoutCommand constructor",
	)
	ErrPaymentReferenceIsRequired = errors.New("payment reference is required")
)

// ApprovePayoutCommand represents a dispensary owner approving a pending
// payout request with a bank payment reference.
type ApprovePayoutCommand struct { //nolint:recvcheck //using for validation
	requestID        kernel.UUID
	dispensaryID     kernel.UUID
	approverID       kernel.UUID
	paymentReference string

	guard guard.ConstructorGuard
}

// NewApprovePayoutCommand creates a command to approve a payout request.
func NewApprovePayoutCommand(
	requestID kernel.UUID,
	dispensaryID kernel.UUID,
	approverID kernel.UUID,
	paymentReference string,
) (ApprovePayoutCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		dispensaryID.Validate(),
		approverID.Validate(),
	); err != nil {
		return ApprovePayoutCommand{}, err
	}
	if paymentReference == "" {
		return ApprovePayoutCommand{}, ErrPaymentReferenceIsRequired
	}

	return ApprovePayoutCommand{
		requestID:        requestID,
		dispensaryID:     dispensaryID,
		approverID:       approverID,
		paymentReference: paymentReference,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApprovePayoutCommand) Validate() error {
	return c.guard.Validate(ErrApprovePayoutCommandIsNotConstructed)
}

// RequestID returns the request being approved.
func (c ApprovePayoutCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DispensaryID returns the dispensary the acting owner belongs to.
func (c ApprovePayoutCommand) DispensaryID() kernel.UUID {
	return c.dispensaryID
}

// ApproverID returns the acting owner.
func (c ApprovePayoutCommand) ApproverID() kernel.UUID {
	return c.approverID
}

// PaymentReference returns the bank payment reference.
func (c ApprovePayoutCommand) PaymentReference() string {
	return c.paymentReference
}
