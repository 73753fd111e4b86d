package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

// PushResult is the per-token outcome of a push attempt.
type PushResult struct {
	Token string

	// Delivered is true when the push service accepted the message for
	// this token.
	Delivered bool

	// Unregistered is true when the push service reported the token as
	// dead (uninstalled app, rotated token). The dispatcher prunes such
	// tokens from the registry.
	Unregistered bool

	// Err carries any transport-level failure for this token.
	Err error
}

// PushSender delivers a notification to a set of device tokens. Push is
// best effort: a failed send never fails the surrounding operation.
type PushSender interface {
	SendPush(ctx context.Context, entity *notification.Notification, tokens []string) ([]PushResult, error)
}

// DeviceTokenRegistry tracks the device push tokens registered per recipient.
type DeviceTokenRegistry interface {
	// Tokens returns the recipient's registered tokens. An empty slice
	// means the recipient has no push-capable device.
	Tokens(ctx context.Context, recipientID kernel.UUID) ([]string, error)

	// Register adds a token for the recipient. Re-registering an existing
	// token is a no-op.
	Register(ctx context.Context, recipientID kernel.UUID, token string) error

	// Remove deletes a token for the recipient.
	Remove(ctx context.Context, recipientID kernel.UUID, token string) error
}
