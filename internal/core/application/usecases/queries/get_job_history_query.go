package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetJobHistoryQueryIsNotConstructed = errors.New(
	"GetJobHistoryQuery must be created via NewGetJobHistoryQuery constructor",
)

// GetJobHistoryQuery retrieves a driver's terminal jobs, newest first.
// Failed jobs are part of the history; they are retained as an audit trail,
// never deleted.
type GetJobHistoryQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobHistoryQuery creates a query for a driver's delivery history.
func NewGetJobHistoryQuery(driverID kernel.UUID) (GetJobHistoryQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetJobHistoryQuery{}, err
	}

	return GetJobHistoryQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetJobHistoryQueryIsNotConstructed)
}

// DriverID returns the driver whose history is requested.
func (q GetJobHistoryQuery) DriverID() kernel.UUID {
	return q.driverID
}

// GetJobHistoryQueryResponse is one terminal job in the driver's history.
type GetJobHistoryQueryResponse struct {
	ID             kernel.UUID
	Status         string
	QuotedEarnings string
	Payable        bool
	FailureReason  string
	DeliveredAt    *time.Time
}
