package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/guard"
)

var ErrGetPayoutRequestsQueryIsNotConstructed = errors.New(
	"GetPayoutRequestsQuery must be created via NewGetPayoutRequestsQuery constructor",
)

// GetPayoutRequestsQuery retrieves a dispensary's payout requests in a given
// status, oldest first. Drives the owner's review queue.
type GetPayoutRequestsQuery struct {
	dispensaryID kernel.UUID
	status       payout.Status

	guard guard.ConstructorGuard
}

// NewGetPayoutRequestsQuery creates a query for a dispensary's payout
// requests.
func NewGetPayoutRequestsQuery(dispensaryID kernel.UUID, status payout.Status) (GetPayoutRequestsQuery, error) {
	if err := errors.Join(
		dispensaryID.Validate(),
		status.Validate(),
	); err != nil {
		return GetPayoutRequestsQuery{}, err
	}

	return GetPayoutRequestsQuery{
		dispensaryID: dispensaryID,
		status:       status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPayoutRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetPayoutRequestsQueryIsNotConstructed)
}

// DispensaryID returns the dispensary whose requests are listed.
func (q GetPayoutRequestsQuery) DispensaryID() kernel.UUID {
	return q.dispensaryID
}

// Status returns the status filter.
func (q GetPayoutRequestsQuery) Status() payout.Status {
	return q.status
}

// GetPayoutRequestsQueryResponse is one payout request in the owner's review
// list. The bank snapshot is included so the owner can make the transfer
// without a second lookup.
type GetPayoutRequestsQueryResponse struct {
	ID                kernel.UUID
	DriverID          kernel.UUID
	Amount            string
	DeliveriesCovered int
	BankHolderName    string
	BankName          string
	BankAccountNumber string
	Status            string
	RequestedAt       time.Time
}
