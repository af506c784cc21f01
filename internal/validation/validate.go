package validation

import (
	"github.com/marcus/carousel-studio/internal/types"
)

// ValidateCarousel runs every check over every slide and collects all
// failures. Checks never short-circuit; the full error list is what goes
// into the audit record and back to the queue. The result is deterministic
// for a given bundle: slides are walked in position order and checks run
// in a fixed sequence.
func ValidateCarousel(bundle *types.CarouselBundle) types.ValidationResult {
	byPos := bundle.Carousel.Layout.ByPosition()

	var errs []types.ValidationError
	for _, slide := range bundle.Slides {
		layout := byPos[slide.Position]

		errs = append(errs, checkFontSizes(slide.Position, layout)...)
		errs = append(errs, checkSafeZoneBounds(slide.Position, layout)...)
		errs = append(errs, checkHeadline(slide)...)
		errs = append(errs, checkBackground(slide)...)
		errs = append(errs, checkPreview(slide)...)
	}

	return types.ValidationResult{
		Passed: len(errs) == 0,
		Errors: errs,
	}
}
