// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification rows. The (recipient, entity, type, title) tuple carries a
// unique index so a replayed event cannot insert a duplicate even if the
// dispatcher's existence check races.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_notifications_dedupe"`
	RecipientRole string
	Type          string `gorm:"uniqueIndex:idx_notifications_dedupe"`
	Title         string `gorm:"uniqueIndex:idx_notifications_dedupe"`
	Body          string
	Priority      string
	EntityID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_notifications_dedupe"`
	Read          bool
	CreatedAt     time.Time
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(entity *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:            entity.ID().Bytes(),
		RecipientID:   entity.Recipient().Bytes(),
		RecipientRole: entity.RecipientRole().String(),
		Type:          entity.Type().String(),
		Title:         entity.Title(),
		Body:          entity.Body(),
		Priority:      entity.Priority().String(),
		EntityID:      entity.Entity().Bytes(),
		Read:          entity.IsRead(),
		CreatedAt:     entity.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	role, err := notification.ParseRole(dto.RecipientRole)
	if err != nil {
		return nil, err
	}
	kind, err := notification.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	priority, err := notification.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		recipientID,
		role,
		kind,
		dto.Title,
		dto.Body,
		priority,
		entityID,
		dto.Read,
		dto.CreatedAt,
	)
}
