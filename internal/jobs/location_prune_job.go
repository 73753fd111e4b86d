package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// LocationPruneJob periodically deletes stale position samples. Completing
// or failing a job already clears its feed in the same transaction; this
// sweeper catches samples orphaned by crashes between the status write and
// the cleanup.
type LocationPruneJob struct {
	locations ports.LocationRepository
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLocationPruneJob creates the prune job. Samples older than retention
// are removed on every run.
func NewLocationPruneJob(
	locations ports.LocationRepository,
	retention time.Duration,
	logger *slog.Logger,
) *LocationPruneJob {
	return &LocationPruneJob{
		locations: locations,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "location_prune_job"),
	}
}

// Start schedules the prune to run hourly.
func (j *LocationPruneJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.retention)

		deleted, err := j.locations.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location prune failed", "error", err)
			return
		}
		if deleted > 0 {
			j.logger.InfoContext(ctx, "Pruned stale location samples", "deleted", deleted)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location prune job started (running hourly)")
	return nil
}

// Stop stops the prune job.
func (j *LocationPruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location prune job stopped")
}
