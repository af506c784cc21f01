package validation

import (
	"strings"

	"github.com/marcus/carousel-studio/internal/types"
)

// checkHeadline flags slides whose headline is empty or whitespace-only.
func checkHeadline(slide types.Slide) []types.ValidationError {
	if strings.TrimSpace(slide.Headline) != "" {
		return nil
	}
	return []types.ValidationError{{
		SlidePosition: slide.Position,
		Check:         types.CheckEmptyHeadline,
		Message:       "Headline is empty",
	}}
}

// checkBackground flags slides the background stage never wrote a URL for.
func checkBackground(slide types.Slide) []types.ValidationError {
	if slide.BGURL != "" {
		return nil
	}
	return []types.ValidationError{{
		SlidePosition: slide.Position,
		Check:         types.CheckMissingBackground,
		Message:       "Background image not generated",
	}}
}

// checkPreview flags slides the preview stage never wrote a URL for.
func checkPreview(slide types.Slide) []types.ValidationError {
	if slide.PreviewURL != "" {
		return nil
	}
	return []types.ValidationError{{
		SlidePosition: slide.Position,
		Check:         types.CheckMissingPreview,
		Message:       "Preview not rendered",
	}}
}
