package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetUnclaimedJobsQueryIsNotConstructed = errors.New(
	"GetUnclaimedJobsQuery must be created via NewGetUnclaimedJobsQuery constructor",
)

// GetUnclaimedJobsQuery retrieves a dispensary's open delivery board: jobs
// awaiting a driver, oldest first.
type GetUnclaimedJobsQuery struct {
	dispensaryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnclaimedJobsQuery creates a query for a dispensary's unclaimed jobs.
func NewGetUnclaimedJobsQuery(dispensaryID kernel.UUID) (GetUnclaimedJobsQuery, error) {
	if err := dispensaryID.Validate(); err != nil {
		return GetUnclaimedJobsQuery{}, err
	}

	return GetUnclaimedJobsQuery{
		dispensaryID: dispensaryID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnclaimedJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnclaimedJobsQueryIsNotConstructed)
}

// DispensaryID returns the dispensary whose board is requested.
func (q GetUnclaimedJobsQuery) DispensaryID() kernel.UUID {
	return q.dispensaryID
}

// GetUnclaimedJobsQueryResponse is one open job on the board.
type GetUnclaimedJobsQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	PickupStreet   string
	PickupSuburb   string
	DropoffStreet  string
	DropoffSuburb  string
	QuotedEarnings string
}
