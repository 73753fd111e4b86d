package queries

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveJobQueryHandler reads the driver's active delivery straight from
// the database. A driver has at most one job in a tracking status by
// construction, so a bare LIMIT 1 is safe.
type GetActiveJobQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveJobQueryHandler creates a handler for active delivery queries.
func NewGetActiveJobQueryHandler(db *gorm.DB) GetActiveJobQueryHandler {
	return GetActiveJobQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the driver
// has no delivery in flight.
func (h GetActiveJobQueryHandler) Handle(
	ctx context.Context,
	query GetActiveJobQuery,
) (GetActiveJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveJobQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			dispensary_id,
			status,
			pickup_street,
			pickup_city,
			dropoff_street,
			dropoff_city,
			customer_name,
			customer_phone,
			quoted_earnings,
			claimed_at
		FROM delivery_jobs
		WHERE driver_id = ? AND status BETWEEN ? AND ?
		LIMIT 1
	`, query.DriverID().String(), job.Claimed, job.Arrived).Rows()
	if err != nil {
		return GetActiveJobQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetActiveJobQueryResponse{}, err
		}
		return GetActiveJobQueryResponse{}, errs.NewObjectNotFoundError("driverID", query.DriverID())
	}

	var (
		resp                      GetActiveJobQueryResponse
		id, orderID, dispensaryID uuid.UUID
		status                    int
	)
	if err = rows.Scan(
		&id,
		&orderID,
		&dispensaryID,
		&status,
		&resp.PickupStreet,
		&resp.PickupCity,
		&resp.DropoffStreet,
		&resp.DropoffCity,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.QuotedEarnings,
		&resp.ClaimedAt,
	); err != nil {
		return GetActiveJobQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetActiveJobQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetActiveJobQueryResponse{}, err
	}
	if resp.DispensaryID, err = kernel.UUIDFromBytes(dispensaryID[:]); err != nil {
		return GetActiveJobQueryResponse{}, err
	}
	resp.Status = job.Status(status).String()

	return resp, rows.Err()
}
