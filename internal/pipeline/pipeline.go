// Package pipeline provides the high-level orchestration for carousel
// generation: the five-stage sequence, the status state machine and the
// on-demand hi-res sub-pipeline.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcus/carousel-studio/internal/blob"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/imagegen"
	"github.com/marcus/carousel-studio/internal/llm"
	"github.com/marcus/carousel-studio/internal/telemetry"
	"github.com/marcus/carousel-studio/internal/types"
)

// Store is the record-store surface the pipeline consumes. *db.DB
// implements it.
type Store interface {
	GetCarouselBundle(ctx context.Context, carouselID uuid.UUID) (*types.CarouselBundle, error)
	UpdateCarouselStatus(ctx context.Context, carouselID uuid.UUID, to types.Status) error
	SaveLayout(ctx context.Context, carouselID uuid.UUID, layout *types.LayoutDocument) error
	UpdateSlideBackground(ctx context.Context, slideID uuid.UUID, bgURL, bgPrompt string) error
	UpdateSlidePreview(ctx context.Context, slideID uuid.UUID, previewURL string) error
	UpdateSlideHires(ctx context.Context, slideID uuid.UUID, hiresURL string) error
	InsertJobRecord(ctx context.Context, carouselID uuid.UUID, jobType, status string, result any) error
	GetActivePromptTemplate(ctx context.Context, promptID string) (*db.PromptTemplate, error)
}

// Renderer rasterizes an HTML document at the given device scale factor.
// *render.Surface implements it.
type Renderer interface {
	Render(ctx context.Context, html string, scale float64, settle time.Duration) ([]byte, error)
}

// ProgressFunc reports coarse pipeline progress as a percentage. Used by
// the queue binding to surface progress without exposing queue internals.
type ProgressFunc func(pct int)

// Orchestrator drives the pipeline stages against injected collaborators.
type Orchestrator struct {
	store    Store
	llm      llm.Client
	images   imagegen.Generator
	blobs    blob.Store
	renderer Renderer
	logger   zerolog.Logger
	metrics  *telemetry.Metrics

	// Recorded in background-stage audit rows.
	imageProvider string
	imageModel    string
}

// Options configures an Orchestrator.
type Options struct {
	Store    Store
	LLM      llm.Client
	Images   imagegen.Generator
	Blobs    blob.Store
	Renderer Renderer
	Logger   zerolog.Logger
	Metrics  *telemetry.Metrics

	ImageProvider string
	ImageModel    string
}

// NewOrchestrator wires an Orchestrator from its collaborators.
func NewOrchestrator(opts Options) *Orchestrator {
	return &Orchestrator{
		store:         opts.Store,
		llm:           opts.LLM,
		images:        opts.Images,
		blobs:         opts.Blobs,
		renderer:      opts.Renderer,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		imageProvider: opts.ImageProvider,
		imageModel:    opts.ImageModel,
	}
}

// observeStage records the stage duration when metrics are wired.
func (o *Orchestrator) observeStage(stage string, start time.Time) {
	if o.metrics != nil {
		o.metrics.ObserveStage(stage, start)
	}
}
