// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ratingAuditJob *RatingAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(db *gorm.DB, logger *slog.Logger) *JobManager {
	return &JobManager{
		ratingAuditJob: NewRatingAuditJob(db, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.ratingAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start rating audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ratingAuditJob.Stop()
}
