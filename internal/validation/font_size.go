// Package validation checks generated carousels for legibility and
// safe-zone compliance before they are marked generated.
package validation

import (
	"fmt"

	"github.com/marcus/carousel-studio/internal/types"
)

// MinFontSize is the smallest legible font size in canvas pixels.
const MinFontSize = 20

// checkFontSizes flags every text element whose explicit font size falls
// below the minimum. Elements with no font size inherit a legible default
// at render time and are skipped.
func checkFontSizes(position int, layout *types.SlideLayout) []types.ValidationError {
	if layout == nil {
		return nil
	}

	var errs []types.ValidationError
	for _, el := range layout.TextElements {
		if el.FontSize != 0 && el.FontSize < MinFontSize {
			errs = append(errs, types.ValidationError{
				SlidePosition: position,
				Check:         types.CheckMinFontSize,
				Message:       fmt.Sprintf("Font size %gpx for %s is below minimum %dpx", el.FontSize, el.Type, MinFontSize),
				Value:         el.FontSize,
				Threshold:     MinFontSize,
			})
		}
	}
	return errs
}
