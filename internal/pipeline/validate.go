package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/types"
	"github.com/marcus/carousel-studio/internal/validation"
)

// ValidateSlides runs stage 4: the validation gate. It always executes
// and always writes an audit row carrying the full result; a failed
// verdict is a normal outcome for the caller to branch on, not an error.
func (o *Orchestrator) ValidateSlides(ctx context.Context, carouselID uuid.UUID) (*types.ValidationResult, error) {
	defer o.observeStage(db.JobTypeValidate, time.Now())

	bundle, err := o.store.GetCarouselBundle(ctx, carouselID)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateCarousel(bundle)

	status := db.JobStatusCompleted
	if !result.Passed {
		status = db.JobStatusFailed
	}

	if err := o.store.InsertJobRecord(ctx, carouselID, db.JobTypeValidate, status,
		map[string]any{
			"passed":       result.Passed,
			"total_checks": len(bundle.Slides) * types.ChecksPerSlide,
			"errors_found": len(result.Errors),
			"errors":       result.Errors,
		},
	); err != nil {
		return nil, err
	}

	return &result, nil
}
