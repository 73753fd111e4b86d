package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverBalanceQueryIsNotConstructed = errors.New(
	"GetDriverBalanceQuery must be created via NewGetDriverBalanceQuery constructor",
)

// GetDriverBalanceQuery retrieves a driver's derived payable balance at one
// dispensary. The balance is never stored; every read recomputes it from the
// job ledger and payout history.
type GetDriverBalanceQuery struct {
	driverID     kernel.UUID
	dispensaryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverBalanceQuery creates a query for a driver's balance at a
// dispensary.
func NewGetDriverBalanceQuery(driverID, dispensaryID kernel.UUID) (GetDriverBalanceQuery, error) {
	if err := errors.Join(
		driverID.Validate(),
		dispensaryID.Validate(),
	); err != nil {
		return GetDriverBalanceQuery{}, err
	}

	return GetDriverBalanceQuery{
		driverID:     driverID,
		dispensaryID: dispensaryID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverBalanceQueryIsNotConstructed)
}

// DriverID returns the driver whose balance is requested.
func (q GetDriverBalanceQuery) DriverID() kernel.UUID {
	return q.driverID
}

// DispensaryID returns the dispensary scope of the balance.
func (q GetDriverBalanceQuery) DispensaryID() kernel.UUID {
	return q.dispensaryID
}

// GetDriverBalanceQueryResponse is the derived balance plus the counts that
// produced it. Amounts are decimal strings.
type GetDriverBalanceQueryResponse struct {
	Earned             string
	Locked             string
	Available          string
	DeliveredCount     int
	FailedPayableCount int
}
