package notification_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("creates_unread_notification", func(t *testing.T) {
		now := time.Now()
		entityID := kernel.NewUUID()

		n, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), notification.RoleDriver,
			notification.TypePayout, "Payout approved", "Your payout of R500.00 was approved.",
			notification.PriorityHigh, entityID, now,
		)

		require.NoError(t, err)
		assert.False(t, n.IsRead())
		assert.Equal(t, notification.TypePayout, n.Type())
		assert.True(t, n.Entity().IsEqual(entityID))
		assert.Equal(t, now, n.CreatedAt())
		require.NoError(t, n.Validate())
	})

	t.Run("title_and_body_are_required", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), notification.RoleDriver,
			notification.TypePayout, "", "body",
			notification.PriorityNormal, kernel.NewUUID(), time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), notification.RoleDriver,
			notification.TypePayout, "title", "",
			notification.PriorityNormal, kernel.NewUUID(), time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown_type_is_rejected", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), notification.RoleDriver,
			notification.Type("sms"), "title", "body",
			notification.PriorityNormal, kernel.NewUUID(), time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var n notification.Notification
		assert.ErrorIs(t, n.Validate(), notification.ErrNotificationIsNotConstructed)
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(), notification.RoleOwner,
		notification.TypeOrder, "New order", "Order #42 is ready for dispatch.",
		notification.PriorityNormal, kernel.NewUUID(), time.Now(),
	)
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.IsRead())

	// idempotent
	n.MarkRead()
	assert.True(t, n.IsRead())
}

func TestParseType(t *testing.T) {
	for _, code := range []string{"order", "payment", "shipment", "payout", "achievement"} {
		parsed, err := notification.ParseType(code)
		require.NoError(t, err)
		assert.Equal(t, code, parsed.String())
	}

	_, err := notification.ParseType("push")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseRole(t *testing.T) {
	_, err := notification.ParseRole("driver")
	require.NoError(t, err)

	_, err = notification.ParseRole("admin")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
