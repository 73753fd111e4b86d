package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification
// rows.
type NotificationRepository interface {
	// Add persists a new notification row.
	Add(ctx context.Context, entity *notification.Notification) error

	// ExistsForEntity reports whether a row already exists for the
	// (recipient, entity, type, title) tuple. The dispatcher checks this
	// before writing so a replayed event produces no duplicate; the title
	// distinguishes successive events about the same entity.
	ExistsForEntity(ctx context.Context, recipientID, entityID kernel.UUID, kind notification.Type, title string) (bool, error)

	// Get retrieves a notification by its identifier. Returns
	// errs.ErrObjectNotFound when no such row exists.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetUnreadByRecipient retrieves the recipient's unread rows, newest
	// first.
	GetUnreadByRecipient(ctx context.Context, recipientID kernel.UUID) ([]*notification.Notification, error)

	// Update persists changes to an existing row. The read flag is the
	// only mutable column.
	Update(ctx context.Context, entity *notification.Notification) error
}
