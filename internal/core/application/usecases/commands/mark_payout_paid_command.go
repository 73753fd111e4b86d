package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkPayoutPaidCommandIsNotConstructed = errors.New(
	"MarkPayoutPaidCommand must be created via NewMarkPayoutPaidCommand constructor",
)

// MarkPayoutPaidCommand represents a dispensary owner confirming that the
// bank transfer for an approved request has gone out.
type MarkPayoutPaidCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	dispensaryID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPayoutPaidCommand creates a command to settle an approved payout
// request.
func NewMarkPayoutPaidCommand(requestID, dispensaryID, actorID kernel.UUID) (MarkPayoutPaidCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		dispensaryID.Validate(),
		actorID.Validate(),
	); err != nil {
		return MarkPayoutPaidCommand{}, err
	}

	return MarkPayoutPaidCommand{
		requestID:    requestID,
		dispensaryID: dispensaryID,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPayoutPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPayoutPaidCommandIsNotConstructed)
}

// RequestID returns the request being settled.
func (c MarkPayoutPaidCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DispensaryID returns the dispensary the acting owner belongs to.
func (c MarkPayoutPaidCommand) DispensaryID() kernel.UUID {
	return c.dispensaryID
}

// ActorID returns the acting owner.
func (c MarkPayoutPaidCommand) ActorID() kernel.UUID {
	return c.actorID
}
