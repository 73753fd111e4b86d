package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnreadNotificationsQueryHandler reads a recipient's unread notification
// rows from the database.
type GetUnreadNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadNotificationsQueryHandler creates a handler for unread
// notification queries.
func NewGetUnreadNotificationsQueryHandler(db *gorm.DB) GetUnreadNotificationsQueryHandler {
	return GetUnreadNotificationsQueryHandler{db: db}
}

// Handle executes the query. Newest notifications come first.
func (h GetUnreadNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUnreadNotificationsQuery,
) ([]GetUnreadNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetUnreadNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			title,
			body,
			priority,
			entity_id,
			created_at
		FROM notifications
		WHERE recipient_id = ? AND read = FALSE
		ORDER BY created_at DESC
	`, query.RecipientID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp         GetUnreadNotificationsQueryResponse
			id, entityID uuid.UUID
		)
		if err = rows.Scan(
			&id,
			&resp.Type,
			&resp.Title,
			&resp.Body,
			&resp.Priority,
			&entityID,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return nil, err
		}

		notifications = append(notifications, resp)
	}

	return notifications, rows.Err()
}
