// Package queries contains read-only operations answering questions about
// system state. Implements the query side of the CQRS architecture: handlers
// read the database directly and return flat response structs, bypassing the
// aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveJobQueryIsNotConstructed = errors.New(
	"GetActiveJobQuery must be created via NewGetActiveJobQuery constructor",
)

// GetActiveJobQuery retrieves the driver's current active delivery: the one
// job assigned to them in a tracking status. There is no stored pointer to
// it; the active job is always derived from job state.
//
// Example:
//
//	query, _ := NewGetActiveJobQuery(driverID)
//	handler := NewGetActiveJobQueryHandler(db)
//
//	active, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // driver has no delivery in flight
//	}
type GetActiveJobQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveJobQuery creates a query for the driver's active delivery.
func NewGetActiveJobQuery(driverID kernel.UUID) (GetActiveJobQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetActiveJobQuery{}, err
	}

	return GetActiveJobQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveJobQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveJobQueryIsNotConstructed)
}

// DriverID returns the driver whose active delivery is requested.
func (q GetActiveJobQuery) DriverID() kernel.UUID {
	return q.driverID
}

// GetActiveJobQueryResponse carries everything the driver app needs to render
// the in-flight delivery screen.
type GetActiveJobQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	DispensaryID   kernel.UUID
	Status         string
	PickupStreet   string
	PickupCity     string
	DropoffStreet  string
	DropoffCity    string
	CustomerName   string
	CustomerPhone  string
	QuotedEarnings string
	ClaimedAt      time.Time
}
