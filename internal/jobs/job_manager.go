// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3 and managed through a single JobManager.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationPruneJob *LocationPruneJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	locations ports.LocationRepository,
	locationRetention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationPruneJob: NewLocationPruneJob(locations, locationRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationPruneJob.Start(); err != nil {
		return fmt.Errorf("failed to start location prune job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationPruneJob.Stop()
}
