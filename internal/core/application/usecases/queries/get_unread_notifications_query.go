package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetUnreadNotificationsQueryIsNotConstructed = errors.New(
	"GetUnreadNotificationsQuery must be created via NewGetUnreadNotificationsQuery constructor",
)

// GetUnreadNotificationsQuery retrieves a recipient's unread notifications,
// newest first.
type GetUnreadNotificationsQuery struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadNotificationsQuery creates a query for a recipient's unread
// notifications.
func NewGetUnreadNotificationsQuery(recipientID kernel.UUID) (GetUnreadNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return GetUnreadNotificationsQuery{}, err
	}

	return GetUnreadNotificationsQuery{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadNotificationsQueryIsNotConstructed)
}

// RecipientID returns the recipient whose unread rows are listed.
func (q GetUnreadNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// GetUnreadNotificationsQueryResponse is one unread notification row.
type GetUnreadNotificationsQueryResponse struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Body      string
	Priority  string
	EntityID  kernel.UUID
	CreatedAt time.Time
}
