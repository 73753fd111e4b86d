// Package redis implements the DeviceTokenRegistry port on a Redis set per
// recipient. Sets give idempotent registration for free: re-registering a
// token is a no-op at the storage level.
package redis

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// TokenRegistry stores device push tokens keyed by recipient.
type TokenRegistry struct {
	client *redis.Client
}

// NewTokenRegistry creates a registry backed by the given Redis client.
func NewTokenRegistry(client *redis.Client) *TokenRegistry {
	return &TokenRegistry{client: client}
}

func tokenKey(recipientID kernel.UUID) string {
	return fmt.Sprintf("push:tokens:%s", recipientID.String())
}

// Tokens returns the recipient's registered tokens.
func (r *TokenRegistry) Tokens(ctx context.Context, recipientID kernel.UUID) ([]string, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	return r.client.SMembers(ctx, tokenKey(recipientID)).Result()
}

// Register adds a token for the recipient.
func (r *TokenRegistry) Register(ctx context.Context, recipientID kernel.UUID, token string) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	return r.client.SAdd(ctx, tokenKey(recipientID), token).Err()
}

// Remove deletes a token for the recipient.
func (r *TokenRegistry) Remove(ctx context.Context, recipientID kernel.UUID, token string) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	return r.client.SRem(ctx, tokenKey(recipientID), token).Err()
}
