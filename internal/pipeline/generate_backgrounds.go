package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/carousel-studio/internal/blob"
	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/prompts"
)

// backgroundMood is a fixed prompt variable; the style preset carries the
// per-carousel variation.
const backgroundMood = "professional and modern"

// GenerateBackgrounds runs stage 2: for every slide in position order,
// builds a background prompt from the active template plus brand data,
// generates the image, uploads it at the slide's deterministic key and
// records the URL and the final prompt on the slide. A failure on any
// slide aborts the stage; there is no partial continuation.
func (o *Orchestrator) GenerateBackgrounds(ctx context.Context, carouselID uuid.UUID) error {
	defer o.observeStage(db.JobTypeGenerateBG, time.Now())

	bundle, err := o.store.GetCarouselBundle(ctx, carouselID)
	if err != nil {
		return err
	}

	tpl, err := o.store.GetActivePromptTemplate(ctx, prompts.BackgroundTemplateID)
	if err != nil {
		return err
	}

	style := bundle.Carousel.StylePreset
	if style == "" {
		style = "modern clean"
	}

	byPos := bundle.Carousel.Layout.ByPosition()

	for _, slide := range bundle.Slides {
		layout := byPos[slide.Position]

		prompt := prompts.Format(tpl.Template, map[string]string{
			"style":              style,
			"brand_primary":      bundle.Client.BrandColors.PrimaryOrDefault(),
			"brand_secondary":    bundle.Client.BrandColors.SecondaryOrDefault(),
			"brand_accent":       bundle.Client.BrandColors.AccentOrDefault(),
			"mood":               backgroundMood,
			"safe_zone_position": layout.BGSafeZonePositionOrDefault(),
			"safe_zone_pct":      strconv.Itoa(layout.BGSafeZonePctOrDefault()),
		})

		img, err := o.images.Generate(ctx, prompt)
		if err != nil {
			return err
		}

		key := blob.Key(carouselID.String(), blob.KindBackground, slide.Position)
		url, err := o.blobs.Put(ctx, key, img.Data, "image/png")
		if err != nil {
			return err
		}

		// The full prompt is stored for debugging.
		if err := o.store.UpdateSlideBackground(ctx, slide.ID, url, prompt); err != nil {
			return err
		}

		o.logger.Info().
			Str("carousel_id", carouselID.String()).
			Int("position", slide.Position).
			Msg("background generated")
	}

	return o.store.InsertJobRecord(ctx, carouselID, db.JobTypeGenerateBG, db.JobStatusCompleted,
		map[string]any{
			"backgrounds_generated": len(bundle.Slides),
			"provider":              o.imageProvider,
			"model":                 o.imageModel,
		})
}
