package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// ErrForeignNotification is returned when a recipient tries to mark a
// notification that belongs to someone else.
var ErrForeignNotification = errs.NewForbiddenError(
	"notification belongs to another recipient")

// MarkNotificationReadCommandHandler handles the read flag, the only
// mutation a notification row supports.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for marking
// notifications read.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-read command. Marking an already-read row
// succeeds without effect.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	entity, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !entity.Recipient().IsEqual(cmd.RecipientID()) {
		return ErrForeignNotification
	}

	entity.MarkRead()
	if err = notificationRepo.Update(ctx, entity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
