package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/carousel-studio/internal/blob"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/render"
	"github.com/marcus/carousel-studio/internal/types"
)

// RenderHires runs the on-demand hi-res stage: the same HTML composites
// as previews, rasterized at scale factor 2 (2160x2700). A non-empty
// slideIDs restricts rendering to those slides, matched by identifier --
// the one place the pipeline selects by ID rather than position.
func (o *Orchestrator) RenderHires(ctx context.Context, carouselID uuid.UUID, slideIDs []uuid.UUID) error {
	defer o.observeStage(db.JobTypeRenderHires, time.Now())

	bundle, err := o.store.GetCarouselBundle(ctx, carouselID)
	if err != nil {
		return err
	}

	slides := bundle.Slides
	if len(slideIDs) > 0 {
		wanted := make(map[uuid.UUID]bool, len(slideIDs))
		for _, id := range slideIDs {
			wanted[id] = true
		}
		filtered := make([]types.Slide, 0, len(slideIDs))
		for _, s := range slides {
			if wanted[s.ID] {
				filtered = append(filtered, s)
			}
		}
		slides = filtered
	}

	byPos := bundle.Carousel.Layout.ByPosition()

	for _, slide := range slides {
		html := render.BuildSlideHTML(slide, byPos[slide.Position], bundle.Client)

		shot, err := o.renderer.Render(ctx, html, 2, render.HiresSettle)
		if err != nil {
			return err
		}

		key := blob.Key(carouselID.String(), blob.KindHires, slide.Position)
		url, err := o.blobs.Put(ctx, key, shot, "image/png")
		if err != nil {
			return err
		}

		if err := o.store.UpdateSlideHires(ctx, slide.ID, url); err != nil {
			return err
		}

		o.logger.Info().
			Str("carousel_id", carouselID.String()).
			Int("position", slide.Position).
			Msg("hires rendered")
	}

	return o.store.InsertJobRecord(ctx, carouselID, db.JobTypeRenderHires, db.JobStatusCompleted,
		map[string]any{"hires_rendered": len(slides)})
}
