package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/types"
)

// Progress percentages reported at each stage boundary.
const (
	progressLayout      = 10
	progressBackgrounds = 30
	progressPreviews    = 60
	progressValidate    = 80
	progressDone        = 100
)

// Orchestrate drives the full pipeline for one carousel. The carousel
// moves to generating before any stage side effect, and every code path
// resolves it to generated or draft: a failed validation verdict rolls
// back to draft and returns a non-error structured result, while a fatal
// stage error rolls back to draft and propagates so the queue's retry
// accounting engages.
func (o *Orchestrator) Orchestrate(ctx context.Context, carouselID uuid.UUID, progress func(pct int)) (*types.PipelineResult, error) {
	if progress == nil {
		progress = func(int) {}
	}

	log := o.logger.With().Str("carousel_id", carouselID.String()).Logger()
	log.Info().Msg("pipeline starting")

	if err := o.store.UpdateCarouselStatus(ctx, carouselID, types.StatusGenerating); err != nil {
		return nil, err
	}

	result, err := o.runStages(ctx, carouselID, progress, log)
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		if rbErr := o.store.UpdateCarouselStatus(ctx, carouselID, types.StatusDraft); rbErr != nil {
			log.Error().Err(rbErr).Msg("rollback to draft failed")
		}
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) runStages(ctx context.Context, carouselID uuid.UUID, progress ProgressFunc, log zerolog.Logger) (*types.PipelineResult, error) {
	progress(progressLayout)
	log.Info().Msg("stage 1/5: generating layout")
	if err := o.GenerateLayout(ctx, carouselID); err != nil {
		return nil, err
	}

	progress(progressBackgrounds)
	log.Info().Msg("stage 2/5: generating backgrounds")
	if err := o.GenerateBackgrounds(ctx, carouselID); err != nil {
		return nil, err
	}

	progress(progressPreviews)
	log.Info().Msg("stage 3/5: rendering previews")
	if err := o.RenderPreviews(ctx, carouselID); err != nil {
		return nil, err
	}

	progress(progressValidate)
	log.Info().Msg("stage 4/5: validating slides")
	verdict, err := o.ValidateSlides(ctx, carouselID)
	if err != nil {
		return nil, err
	}

	if !verdict.Passed {
		// Normal outcome, not an error: roll back to draft, record the
		// verdict and hand the error list to the queue result.
		log.Warn().Int("errors", len(verdict.Errors)).Msg("validation failed")
		if err := o.store.UpdateCarouselStatus(ctx, carouselID, types.StatusDraft); err != nil {
			return nil, err
		}
		if err := o.store.InsertJobRecord(ctx, carouselID, db.JobTypeValidate, db.JobStatusFailed,
			map[string]any{"errors": verdict.Errors}); err != nil {
			return nil, err
		}
		return &types.PipelineResult{Success: false, Errors: verdict.Errors}, nil
	}

	progress(progressDone)
	if err := o.store.UpdateCarouselStatus(ctx, carouselID, types.StatusGenerated); err != nil {
		return nil, err
	}

	log.Info().Msg("pipeline completed")
	return &types.PipelineResult{Success: true}, nil
}

// HandleHires runs the hi-res sub-pipeline. It requires a generated
// carousel and finishes at hires_ready. A fatal error propagates without
// any status rollback; the carousel keeps its prior status.
func (o *Orchestrator) HandleHires(ctx context.Context, carouselID uuid.UUID, slideIDs []uuid.UUID) error {
	log := o.logger.With().Str("carousel_id", carouselID.String()).Logger()
	log.Info().Int("slide_filter", len(slideIDs)).Msg("hires starting")

	if err := o.RenderHires(ctx, carouselID, slideIDs); err != nil {
		return err
	}

	if err := o.store.UpdateCarouselStatus(ctx, carouselID, types.StatusHiresReady); err != nil {
		return err
	}

	log.Info().Msg("hires completed")
	return nil
}
