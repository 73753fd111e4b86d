package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetJobHistoryQueryHandler reads a driver's terminal jobs from the
// database. The payable flag is read from the stored failure record for
// failed jobs and is implicit for delivered ones.
type GetJobHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetJobHistoryQueryHandler creates a handler for delivery history
// queries.
func NewGetJobHistoryQueryHandler(db *gorm.DB) GetJobHistoryQueryHandler {
	return GetJobHistoryQueryHandler{db: db}
}

// Handle executes the query. Newest terminal jobs come first.
func (h GetJobHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetJobHistoryQuery,
) ([]GetJobHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetJobHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			quoted_earnings,
			failure_reason,
			failure_payable,
			delivered_at
		FROM delivery_jobs
		WHERE driver_id = ? AND status IN (?, ?)
		ORDER BY COALESCE(delivered_at, claimed_at) DESC
	`, query.DriverID().String(), job.Delivered, job.Failed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry          GetJobHistoryQueryResponse
			id             uuid.UUID
			status         int
			failureReason  sql.NullString
			failurePayable sql.NullBool
			deliveredAt    sql.NullTime
		)
		if err = rows.Scan(
			&id,
			&status,
			&entry.QuotedEarnings,
			&failureReason,
			&failurePayable,
			&deliveredAt,
		); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		entry.Status = job.Status(status).String()
		entry.Payable = job.Status(status) == job.Delivered || (failurePayable.Valid && failurePayable.Bool)
		entry.FailureReason = failureReason.String
		if deliveredAt.Valid {
			deliveredCopy := deliveredAt.Time.In(time.UTC)
			entry.DeliveredAt = &deliveredCopy
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
