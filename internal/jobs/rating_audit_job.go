package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RatingAuditJob periodically recomputes user rating aggregates from the
// reviews table. The per-review update is already atomic, so drift should
// not happen; this job repairs the stored aggregates if it ever does.
type RatingAuditJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRatingAuditJob creates the audit job.
func NewRatingAuditJob(db *gorm.DB, logger *slog.Logger) *RatingAuditJob {
	return &RatingAuditJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "rating_audit_job"),
	}
}

// Start schedules the audit to run hourly.
func (j *RatingAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Rating audit failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rating audit job started (running hourly)")
	return nil
}

// Stop stops the audit job.
func (j *RatingAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rating audit job stopped")
}

// Run executes one audit pass. Users whose stored aggregate disagrees with
// the reviews table are rewritten; users with stale aggregates and no
// reviews are reset.
func (j *RatingAuditJob) Run(ctx context.Context) error {
	repaired := j.db.WithContext(ctx).Exec(`
		UPDATE users u
		SET rating_count = s.cnt, rating_avg = s.avg
		FROM (
			SELECT recipient_id, count(*) AS cnt, avg(rating) AS avg
			FROM reviews
			GROUP BY recipient_id
		) s
		WHERE u.id = s.recipient_id
		  AND (u.rating_count <> s.cnt OR abs(u.rating_avg - s.avg) > 1e-9)
	`)
	if repaired.Error != nil {
		return repaired.Error
	}

	reset := j.db.WithContext(ctx).Exec(`
		UPDATE users
		SET rating_count = 0, rating_avg = 0
		WHERE rating_count <> 0
		  AND id NOT IN (SELECT recipient_id FROM reviews)
	`)
	if reset.Error != nil {
		return reset.Error
	}

	if repaired.RowsAffected > 0 || reset.RowsAffected > 0 {
		j.logger.WarnContext(ctx, "Rating aggregates drifted and were repaired",
			"repaired", repaired.RowsAffected,
			"reset", reset.RowsAffected)
	}
	return nil
}
