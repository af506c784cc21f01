package types

// LayoutDocument is the structured output of the layout stage: per-slide
// geometry and text-element styling produced by the LLM.
type LayoutDocument struct {
	Slides []SlideLayout `json:"slides"`
}

// SlideLayout describes the layout for one slide, matched to a persisted
// slide by Position (never by array index or identifier).
type SlideLayout struct {
	Position           int           `json:"position"`
	SafeZone           *SafeZone     `json:"safe_zone,omitempty"`
	TextElements       []TextElement `json:"text_elements,omitempty"`
	BGSafeZonePosition string        `json:"bg_safe_zone_position,omitempty"`
	BGSafeZonePct      int           `json:"bg_safe_zone_pct,omitempty"`
}

// SafeZone is the rectangular region of the canvas reserved for legible
// text over the background image.
type SafeZone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextElement positions and styles one piece of slide text.
// Type is one of headline, subheadline, bullet, cta.
type TextElement struct {
	Type         string   `json:"type"`
	Content      string   `json:"content,omitempty"`
	Items        []string `json:"items,omitempty"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width"`
	FontFamily   string   `json:"font_family,omitempty"`
	FontSize     float64  `json:"font_size,omitempty"`
	FontWeight   string   `json:"font_weight,omitempty"`
	Color        string   `json:"color,omitempty"`
	TextAlign    string   `json:"text_align,omitempty"`
	LineHeight   float64  `json:"line_height,omitempty"`
	BGColor      string   `json:"bg_color,omitempty"`
	Padding      string   `json:"padding,omitempty"`
	BorderRadius float64  `json:"border_radius,omitempty"`
}

// Canvas dimensions for all renders. Hi-res doubles the device scale
// factor, not the viewport.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1350
)

// DefaultSafeZone is the fallback geometry used when a slide has no layout
// entry or its entry omits the safe zone.
func DefaultSafeZone() SafeZone {
	return SafeZone{X: 60, Y: 200, Width: 960, Height: 850}
}

// BGSafeZonePositionOrDefault returns the background safe-zone placement
// hint for image prompts.
func (l *SlideLayout) BGSafeZonePositionOrDefault() string {
	if l == nil || l.BGSafeZonePosition == "" {
		return "center"
	}
	return l.BGSafeZonePosition
}

// BGSafeZonePctOrDefault returns the background safe-zone coverage hint
// for image prompts.
func (l *SlideLayout) BGSafeZonePctOrDefault() int {
	if l == nil || l.BGSafeZonePct == 0 {
		return 60
	}
	return l.BGSafeZonePct
}

// SafeZoneOrDefault returns the slide's safe zone, falling back to the
// documented default geometry.
func (l *SlideLayout) SafeZoneOrDefault() SafeZone {
	if l == nil || l.SafeZone == nil {
		return DefaultSafeZone()
	}
	return *l.SafeZone
}

// ByPosition joins the layout document to persisted slides. The join is
// computed once per stage; a layout entry with no matching slide position is
// ignored, and a slide with no entry resolves to nil (callers fall back to
// defaults).
func (d *LayoutDocument) ByPosition() map[int]*SlideLayout {
	if d == nil {
		return map[int]*SlideLayout{}
	}
	byPos := make(map[int]*SlideLayout, len(d.Slides))
	for i := range d.Slides {
		byPos[d.Slides[i].Position] = &d.Slides[i]
	}
	return byPos
}
