// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, then post-commit event dispatch.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// PayoutRepoFactory provides access to the payout repository within a transaction.
	PayoutRepoFactory interface {
		PayoutRepository() ports.PayoutRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// LocationRepoFactory provides access to the location repository within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// JobUoW manages transactions for job-only operations.
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}

	// TrackedJobUoW manages transactions for operations touching a job and
	// its location feed (completion, failure, position recording).
	TrackedJobUoW interface {
		TxManager
		JobRepoFactory
		LocationRepoFactory
	}

	// TrackedJobUoWFactory creates new tracked-job unit of work instances.
	TrackedJobUoWFactory interface {
		Create() TrackedJobUoW
	}

	// PayoutUoW manages transactions for payout operations. The job
	// repository is included because the payable balance is derived from
	// the job ledger inside the same transaction.
	PayoutUoW interface {
		TxManager
		PayoutRepoFactory
		JobRepoFactory
	}

	// PayoutUoWFactory creates new payout unit of work instances.
	PayoutUoWFactory interface {
		Create() PayoutUoW
	}

	// NotificationUoW manages transactions for notification row operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)

// EventDispatcher receives domain events after the surrounding transaction
// has committed. Implementations deliver notifications best effort; a
// dispatch failure is logged on their side and never surfaces to the command
// handler.
type EventDispatcher interface {
	DispatchJobEvent(ctx context.Context, event job.StatusChanged)
	DispatchPayoutEvent(ctx context.Context, event payout.StatusChanged)
}
