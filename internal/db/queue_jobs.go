package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Retention caps on the queue ledger. Finished rows beyond these counts
// are pruned oldest-first so the ledger stays bounded.
const (
	CompletedJobRetention = 100
	FailedJobRetention    = 50
)

// Queue ledger states.
const (
	QueueJobActive    = "active"
	QueueJobCompleted = "completed"
	QueueJobFailed    = "failed"
)

// RecordQueueJobStart upserts a ledger row for a queue delivery, keyed by
// the message identifier so retries of the same job update one row.
func (db *DB) RecordQueueJobStart(ctx context.Context, messageID string, jobName string, carouselID uuid.UUID, attempt int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO queue_jobs (message_id, name, carousel_id, status, attempt, started_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (message_id) DO UPDATE
		 SET status = $4, attempt = $5, started_at = NOW(), finished_at = NULL, error = NULL, progress = 0`,
		messageID, jobName, carouselID, QueueJobActive, attempt,
	)
	if err != nil {
		return fmt.Errorf("failed to record queue job start: %w", err)
	}
	return nil
}

// UpdateQueueJobProgress records the pipeline's stage progress on the
// ledger row.
func (db *DB) UpdateQueueJobProgress(ctx context.Context, messageID string, pct int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE queue_jobs SET progress = $1 WHERE message_id = $2`,
		pct, messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update queue job progress: %w", err)
	}
	return nil
}

// MarkQueueJobCompleted finishes the ledger row and prunes completed rows
// beyond the retention cap.
func (db *DB) MarkQueueJobCompleted(ctx context.Context, messageID string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE queue_jobs SET status = $1, finished_at = NOW() WHERE message_id = $2`,
		QueueJobCompleted, messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark queue job completed: %w", err)
	}
	return db.pruneQueueJobs(ctx, QueueJobCompleted, CompletedJobRetention)
}

// MarkQueueJobFailed finishes the ledger row with the terminal error and
// prunes failed rows beyond the retention cap.
func (db *DB) MarkQueueJobFailed(ctx context.Context, messageID string, jobErr error) error {
	errMsg := ""
	if jobErr != nil {
		errMsg = jobErr.Error()
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE queue_jobs SET status = $1, finished_at = NOW(), error = $2 WHERE message_id = $3`,
		QueueJobFailed, errMsg, messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark queue job failed: %w", err)
	}
	return db.pruneQueueJobs(ctx, QueueJobFailed, FailedJobRetention)
}

func (db *DB) pruneQueueJobs(ctx context.Context, status string, keep int) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM queue_jobs
		 WHERE status = $1
		   AND message_id NOT IN (
		       SELECT message_id FROM queue_jobs
		       WHERE status = $1
		       ORDER BY finished_at DESC
		       LIMIT $2
		   )`,
		status, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune queue jobs: %w", err)
	}
	return nil
}
