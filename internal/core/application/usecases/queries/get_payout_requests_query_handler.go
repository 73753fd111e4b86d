package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPayoutRequestsQueryHandler reads a dispensary's payout requests from
// the database.
type GetPayoutRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetPayoutRequestsQueryHandler creates a handler for payout review
// queries.
func NewGetPayoutRequestsQueryHandler(db *gorm.DB) GetPayoutRequestsQueryHandler {
	return GetPayoutRequestsQueryHandler{db: db}
}

// Handle executes the query. Oldest requests come first so the review queue
// is worked in arrival order.
func (h GetPayoutRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetPayoutRequestsQuery,
) ([]GetPayoutRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetPayoutRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			amount,
			deliveries_covered,
			bank_holder_name,
			bank_name,
			bank_account_number,
			status,
			requested_at
		FROM payout_requests
		WHERE dispensary_id = ? AND status = ?
		ORDER BY requested_at ASC
	`, query.DispensaryID().String(), query.Status()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp         GetPayoutRequestsQueryResponse
			id, driverID uuid.UUID
			status       int
		)
		if err = rows.Scan(
			&id,
			&driverID,
			&resp.Amount,
			&resp.DeliveriesCovered,
			&resp.BankHolderName,
			&resp.BankName,
			&resp.BankAccountNumber,
			&status,
			&resp.RequestedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		resp.Status = payout.Status(status).String()

		requests = append(requests, resp)
	}

	return requests, rows.Err()
}
