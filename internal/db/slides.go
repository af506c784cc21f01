package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UpdateSlideBackground records the uploaded background URL together with
// the full prompt that produced it, kept for debugging.
func (db *DB) UpdateSlideBackground(ctx context.Context, slideID uuid.UUID, bgURL, bgPrompt string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE slides SET bg_url = $1, bg_prompt = $2 WHERE id = $3`,
		bgURL, bgPrompt, slideID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slide background: %w", err)
	}
	return nil
}

// UpdateSlidePreview records the uploaded preview composite URL.
func (db *DB) UpdateSlidePreview(ctx context.Context, slideID uuid.UUID, previewURL string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE slides SET preview_url = $1 WHERE id = $2`,
		previewURL, slideID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slide preview: %w", err)
	}
	return nil
}

// UpdateSlideHires records the uploaded hi-res final URL.
func (db *DB) UpdateSlideHires(ctx context.Context, slideID uuid.UUID, hiresURL string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE slides SET hires_url = $1 WHERE id = $2`,
		hiresURL, slideID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slide hires: %w", err)
	}
	return nil
}
