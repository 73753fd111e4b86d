package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/guard"
)

var ErrRequestPayoutCommandIsNotConstructed = errors.New(
	"RequestPayoutCommand must be created via NewRequestPayoutCommand constructor",
)

// RequestPayoutCommand represents a driver asking a dispensary to pay out
// part of their accrued earnings. The bank details are snapshotted into the
// request so later profile edits cannot redirect an approved payment.
type RequestPayoutCommand struct { //nolint:recvcheck //using for validation
	requestID    kernel.UUID
	driverID     kernel.UUID
	dispensaryID kernel.UUID
	amount       kernel.Money
	bank         payout.BankSnapshot

	guard guard.ConstructorGuard
}

// NewRequestPayoutCommand creates a command to open a payout request.
// Balance sufficiency is not checked here; the handler derives the balance
// inside the transaction where it cannot race with concurrent requests.
func NewRequestPayoutCommand(
	requestID kernel.UUID,
	driverID kernel.UUID,
	dispensaryID kernel.UUID,
	amount kernel.Money,
	bank payout.BankSnapshot,
) (RequestPayoutCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		driverID.Validate(),
		dispensaryID.Validate(),
		amount.Validate(),
		bank.Validate(),
	); err != nil {
		return RequestPayoutCommand{}, err
	}

	return RequestPayoutCommand{
		requestID:    requestID,
		driverID:     driverID,
		dispensaryID: dispensaryID,
		amount:       amount,
		bank:         bank,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestPayoutCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c RequestPayoutCommand) RequestID() kernel.UUID {
	return c.requestID
}

// DriverID returns the requesting driver.
func (c RequestPayoutCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DispensaryID returns the dispensary being asked to pay.
func (c RequestPayoutCommand) DispensaryID() kernel.UUID {
	return c.dispensaryID
}

// Amount returns the requested amount.
func (c RequestPayoutCommand) Amount() kernel.Money {
	return c.amount
}

// Bank returns the snapshotted bank details.
func (c RequestPayoutCommand) Bank() payout.BankSnapshot {
	return c.bank
}
