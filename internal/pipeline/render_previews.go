package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/carousel-studio/internal/blob"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/render"
)

// RenderPreviews runs stage 3: builds each slide's HTML composite and
// rasterizes it at scale factor 1, uploading the PNG at the slide's
// preview key. The rendering surface is shared across slides.
func (o *Orchestrator) RenderPreviews(ctx context.Context, carouselID uuid.UUID) error {
	defer o.observeStage(db.JobTypeRenderPreview, time.Now())

	bundle, err := o.store.GetCarouselBundle(ctx, carouselID)
	if err != nil {
		return err
	}

	byPos := bundle.Carousel.Layout.ByPosition()

	for _, slide := range bundle.Slides {
		html := render.BuildSlideHTML(slide, byPos[slide.Position], bundle.Client)

		shot, err := o.renderer.Render(ctx, html, 1, render.PreviewSettle)
		if err != nil {
			return err
		}

		key := blob.Key(carouselID.String(), blob.KindPreview, slide.Position)
		url, err := o.blobs.Put(ctx, key, shot, "image/png")
		if err != nil {
			return err
		}

		if err := o.store.UpdateSlidePreview(ctx, slide.ID, url); err != nil {
			return err
		}

		o.logger.Info().
			Str("carousel_id", carouselID.String()).
			Int("position", slide.Position).
			Msg("preview rendered")
	}

	return o.store.InsertJobRecord(ctx, carouselID, db.JobTypeRenderPreview, db.JobStatusCompleted,
		map[string]any{"previews_rendered": len(bundle.Slides)})
}
