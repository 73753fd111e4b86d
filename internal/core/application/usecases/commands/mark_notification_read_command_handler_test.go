package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testNotification(t *testing.T, recipientID kernel.UUID) *notification.Notification {
	t.Helper()
	entity, err := notification.NewNotification(
		kernel.NewUUID(), recipientID, notification.RoleDriver,
		notification.TypePayout, "Payout approved", "Your payout was approved.",
		notification.PriorityNormal, kernel.NewUUID(), time.Now(),
	)
	require.NoError(t, err)
	return entity
}

func TestMarkNotificationReadCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	recipientID := kernel.NewUUID()
	entity := testNotification(t, recipientID)

	cmd, err := commands.NewMarkNotificationReadCommand(entity.ID(), recipientID)
	require.NoError(t, err)

	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Get", ctx, entity.ID()).Return(entity, nil).Once(),
		notificationRepo.On("Update", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkNotificationReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, entity.IsRead())
	notificationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkNotificationReadCommandHandler_Handle_ForeignRecipient(t *testing.T) {
	ctx := t.Context()
	entity := testNotification(t, kernel.NewUUID())
	otherRecipient := kernel.NewUUID()

	cmd, err := commands.NewMarkNotificationReadCommand(entity.ID(), otherRecipient)
	require.NoError(t, err)

	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Get", ctx, entity.ID()).Return(entity, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkNotificationReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrForeignNotification)
	assert.False(t, entity.IsRead())
	notificationRepo.AssertNotCalled(t, "Update")
}
