package validation

import (
	"fmt"

	"github.com/marcus/carousel-studio/internal/types"
)

// safeZonePadding is the inset inside the safe zone that text elements
// must respect.
const safeZonePadding = 24

// checkSafeZoneBounds flags text elements placed outside the padded safe
// zone. The check covers the left, top and right edges; the bottom edge is
// unchecked because vertical overflow is handled by line clamping at
// render time. It runs only when the slide's layout carries an explicit
// safe zone.
func checkSafeZoneBounds(position int, layout *types.SlideLayout) []types.ValidationError {
	if layout == nil || layout.SafeZone == nil {
		return nil
	}

	sz := *layout.SafeZone
	var errs []types.ValidationError
	for _, el := range layout.TextElements {
		if el.X < sz.X+safeZonePadding ||
			el.Y < sz.Y+safeZonePadding ||
			el.X+el.Width > sz.X+sz.Width-safeZonePadding {
			errs = append(errs, types.ValidationError{
				SlidePosition: position,
				Check:         types.CheckSafeZoneBounds,
				Message:       fmt.Sprintf("%s element extends outside safe zone boundaries", el.Type),
			})
		}
	}
	return errs
}
