package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Audit record types, one per pipeline stage. Rows in the jobs table are
// append-only; nothing in the pipeline reads them back.
const (
	JobTypeGenerateLayout = "generate_layout"
	JobTypeGenerateBG     = "generate_bg"
	JobTypeRenderPreview  = "render_preview"
	JobTypeValidate       = "validate"
	JobTypeRenderHires    = "render_hires"
)

// Audit record statuses.
const (
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// InsertJobRecord appends one audit row for a stage run. result is
// stage-specific structured data and is stored as JSON.
func (db *DB) InsertJobRecord(ctx context.Context, carouselID uuid.UUID, jobType, status string, result any) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal job result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO jobs (carousel_id, type, status, result)
		 VALUES ($1, $2, $3, $4)`,
		carouselID, jobType, status, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job record: %w", err)
	}
	return nil
}
