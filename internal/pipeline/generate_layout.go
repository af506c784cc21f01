package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/carousel-studio/internal/db"
	"github.com/marcus/carousel-studio/internal/llm"
	"github.com/marcus/carousel-studio/internal/prompts"
	"github.com/marcus/carousel-studio/internal/schemas"
	"github.com/marcus/carousel-studio/internal/types"
)

// layoutSystemPrompt pins the LLM to raw JSON output.
const layoutSystemPrompt = "You are a layout engine. Return ONLY valid JSON, no markdown."

// slideSummary is the per-slide content handed to the layout prompt.
type slideSummary struct {
	Position    int      `json:"position"`
	Headline    string   `json:"headline"`
	Subheadline string   `json:"subheadline"`
	Bullets     []string `json:"bullets"`
	CTAText     string   `json:"cta_text"`
}

// GenerateLayout runs stage 1: builds the layout prompt from the active
// template and the carousel's content, asks the LLM for a layout document,
// validates it against the layout schema and stores it on the carousel.
func (o *Orchestrator) GenerateLayout(ctx context.Context, carouselID uuid.UUID) error {
	defer o.observeStage(db.JobTypeGenerateLayout, time.Now())

	bundle, err := o.store.GetCarouselBundle(ctx, carouselID)
	if err != nil {
		return err
	}

	tpl, err := o.store.GetActivePromptTemplate(ctx, prompts.LayoutTemplateID)
	if err != nil {
		return err
	}

	summaries := make([]slideSummary, 0, len(bundle.Slides))
	for _, s := range bundle.Slides {
		summaries = append(summaries, slideSummary{
			Position:    s.Position,
			Headline:    s.Headline,
			Subheadline: s.Subheadline,
			Bullets:     s.Bullets,
			CTAText:     s.CTAText,
		})
	}
	slidesData, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal slide data: %w", err)
	}

	stylePreset := bundle.Carousel.StylePreset
	if stylePreset == "" {
		stylePreset = types.DefaultStylePreset
	}

	prompt := prompts.Format(tpl.Template, map[string]string{
		"carousel_title":         bundle.Carousel.Title,
		"slides_data":            string(slidesData),
		"brand_fonts_heading":    bundle.Client.BrandFonts.HeadingOrDefault(),
		"brand_fonts_body":       bundle.Client.BrandFonts.BodyOrDefault(),
		"brand_colors_primary":   bundle.Client.BrandColors.PrimaryOrDefault(),
		"brand_colors_secondary": bundle.Client.BrandColors.SecondaryOrDefault(),
		"brand_colors_accent":    bundle.Client.BrandColors.AccentOrDefault(),
		"style_preset":           stylePreset,
	})

	raw, err := o.llm.GenerateJSON(ctx, layoutSystemPrompt, prompt)
	if err != nil {
		return err
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateLayoutJSON([]byte(cleaned)); err != nil {
		return fmt.Errorf("layout document rejected: %w", err)
	}

	var layout types.LayoutDocument
	if err := json.Unmarshal([]byte(cleaned), &layout); err != nil {
		return fmt.Errorf("failed to parse layout document: %w", err)
	}

	if err := o.store.SaveLayout(ctx, carouselID, &layout); err != nil {
		return err
	}

	o.logger.Info().
		Str("carousel_id", carouselID.String()).
		Int("layout_slides", len(layout.Slides)).
		Msg("layout generated")

	return o.store.InsertJobRecord(ctx, carouselID, db.JobTypeGenerateLayout, db.JobStatusCompleted,
		map[string]any{"layout_generated": true})
}
