package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// LocationRepository defines the persistence contract for the append-only
// driver position feed.
type LocationRepository interface {
	// Append stores one position sample.
	Append(ctx context.Context, sample job.LocationSample) error

	// GetByJob retrieves a job's samples in recording order.
	GetByJob(ctx context.Context, jobID kernel.UUID) ([]job.LocationSample, error)

	// DeleteForJob removes all samples of a job. Called once the job
	// reaches a terminal status; positions have no value after delivery.
	DeleteForJob(ctx context.Context, jobID kernel.UUID) error

	// DeleteOlderThan removes samples recorded before the cutoff,
	// regardless of job. Safety net for jobs whose post-completion prune
	// never ran.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
