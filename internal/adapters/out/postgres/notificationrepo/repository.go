package notificationrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification row to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, entity *notification.Notification) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// ExistsForEntity reports whether a row already exists for the
// (recipient, entity, type, title) tuple.
func (r *GormNotificationRepository) ExistsForEntity(
	ctx context.Context,
	recipientID, entityID kernel.UUID,
	kind notification.Type,
	title string,
) (bool, error) {
	if err := recipientID.Validate(); err != nil {
		return false, err
	}
	if err := entityID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("recipient_id = ? AND entity_id = ? AND type = ? AND title = ?",
			recipientID.Bytes(), entityID.Bytes(), kind.String(), title).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetUnreadByRecipient retrieves the recipient's unread rows, newest first.
func (r *GormNotificationRepository) GetUnreadByRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND read = FALSE", recipientID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		entity, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		notifications = append(notifications, entity)
	}

	return notifications, nil
}

// Update saves an existing row. Only the read flag ever changes after
// insertion, but the whole row is written for simplicity.
func (r *GormNotificationRepository) Update(ctx context.Context, entity *notification.Notification) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", entity.ID().String())
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}
