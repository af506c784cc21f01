package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/marcus/carousel-studio/internal/types"
)

// BuildSlideHTML produces the self-contained HTML document for one slide:
// brand background color, background image, contrast overlay over the safe
// zone, text elements and logo. Layout-provided positions are used when
// present; otherwise a default text block is placed inside the safe zone.
// layout may be nil when the slide has no entry in the layout document.
func BuildSlideHTML(slide types.Slide, layout *types.SlideLayout, client types.Client) string {
	headingFont := client.BrandFonts.HeadingOrDefault()
	bodyFont := client.BrandFonts.BodyOrDefault()
	primary := client.BrandColors.PrimaryOrDefault()
	accent := client.BrandColors.AccentOrDefault()
	safeZone := layout.SafeZoneOrDefault()

	var textElements []types.TextElement
	if layout != nil {
		textElements = layout.TextElements
	}

	var textHTML string
	if len(textElements) > 0 {
		textHTML = positionedTextHTML(textElements, slide, headingFont, accent)
	} else {
		textHTML = defaultTextHTML(slide, safeZone, headingFont, bodyFont, accent)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b,
		"  <link href=\"https://fonts.googleapis.com/css2?family=%s:wght@400;600;700&family=%s:wght@400;500;600&display=swap\" rel=\"stylesheet\">\n",
		url.QueryEscape(headingFont), url.QueryEscape(bodyFont))
	b.WriteString("  <style>\n    * { margin: 0; padding: 0; box-sizing: border-box; }\n")
	fmt.Fprintf(&b, "    body { width: %dpx; height: %dpx; overflow: hidden; }\n  </style>\n</head>\n<body>\n",
		types.CanvasWidth, types.CanvasHeight)
	fmt.Fprintf(&b, "  <div style=\"position: relative; width: %dpx; height: %dpx; background: %s;\">\n",
		types.CanvasWidth, types.CanvasHeight, primary)

	if slide.BGURL != "" {
		fmt.Fprintf(&b,
			"    <img src=\"%s\" style=\"position: absolute; top: 0; left: 0; width: 100%%; height: 100%%; object-fit: cover;\" crossorigin=\"anonymous\" />\n",
			html.EscapeString(slide.BGURL))
	}

	// Contrast overlay over the safe zone keeps text legible on busy
	// backgrounds.
	fmt.Fprintf(&b,
		"    <div style=\"position: absolute; left: %gpx; top: %gpx; width: %gpx; height: %gpx; background: rgba(0,0,0,0.45); border-radius: 12px;\"></div>\n",
		safeZone.X, safeZone.Y, safeZone.Width, safeZone.Height)

	b.WriteString(textHTML)

	if client.LogoURL != "" {
		fmt.Fprintf(&b,
			"    <img src=\"%s\" style=\"position: absolute; top: 40px; left: 40px; width: 100px; height: auto; max-height: 100px; object-fit: contain;\" crossorigin=\"anonymous\" />\n",
			html.EscapeString(client.LogoURL))
	}

	b.WriteString("  </div>\n</body>\n</html>")
	return b.String()
}

// positionedTextHTML renders the layout's text elements at their absolute
// coordinates. Element content falls back to the slide's own fields.
func positionedTextHTML(elements []types.TextElement, slide types.Slide, headingFont, accent string) string {
	var b strings.Builder
	for _, el := range elements {
		style := elementStyle(el, headingFont)

		switch el.Type {
		case "headline":
			content := firstNonEmpty(el.Content, slide.Headline)
			fmt.Fprintf(&b, "    <div style=\"%s\">%s</div>\n", style, html.EscapeString(content))
		case "subheadline":
			content := firstNonEmpty(el.Content, slide.Subheadline)
			if content != "" {
				fmt.Fprintf(&b, "    <div style=\"%s\">%s</div>\n", style, html.EscapeString(content))
			}
		case "bullet":
			items := el.Items
			if len(items) == 0 {
				items = slide.Bullets
			}
			if len(items) > 0 {
				fmt.Fprintf(&b, "    <ul style=\"%s; list-style: none; padding: 0; margin: 0;\">%s</ul>\n",
					style, bulletListHTML(items, "8px"))
			}
		case "cta":
			content := firstNonEmpty(el.Content, slide.CTAText)
			if content != "" {
				ctaStyle := fmt.Sprintf("%s; background: %s; padding: %s; border-radius: %gpx; display: inline-block; text-decoration: none;",
					style,
					firstNonEmpty(el.BGColor, accent),
					firstNonEmpty(el.Padding, "14px 32px"),
					nonZero(el.BorderRadius, 8))
				fmt.Fprintf(&b, "    <div style=\"%s\">%s</div>\n", ctaStyle, html.EscapeString(content))
			}
		}
	}
	return b.String()
}

// defaultTextHTML stacks the slide's fields in a single block inset 24px
// inside the safe zone.
func defaultTextHTML(slide types.Slide, safeZone types.SafeZone, headingFont, bodyFont, accent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    <div style=\"position: absolute; left: %gpx; top: %gpx; width: %gpx;\">\n",
		safeZone.X+24, safeZone.Y+24, safeZone.Width-48)
	fmt.Fprintf(&b,
		"      <h1 style=\"font-family: '%s', sans-serif; font-size: 48px; font-weight: bold; color: #fff; margin: 0 0 16px 0; line-height: 1.2;\">%s</h1>\n",
		headingFont, html.EscapeString(slide.Headline))
	if slide.Subheadline != "" {
		fmt.Fprintf(&b,
			"      <p style=\"font-family: '%s', sans-serif; font-size: 28px; color: rgba(255,255,255,0.9); margin: 0 0 24px 0; line-height: 1.4;\">%s</p>\n",
			bodyFont, html.EscapeString(slide.Subheadline))
	}
	if len(slide.Bullets) > 0 {
		fmt.Fprintf(&b,
			"      <ul style=\"font-family: '%s', sans-serif; font-size: 22px; color: rgba(255,255,255,0.85); list-style: none; padding: 0; margin: 0 0 24px 0;\">%s</ul>\n",
			bodyFont, bulletListHTML(slide.Bullets, "10px"))
	}
	if slide.CTAText != "" {
		fmt.Fprintf(&b,
			"      <div style=\"display: inline-block; background: %s; color: #fff; font-family: '%s', sans-serif; font-size: 20px; font-weight: 600; padding: 14px 36px; border-radius: 8px; margin-top: 8px;\">%s</div>\n",
			accent, headingFont, html.EscapeString(slide.CTAText))
	}
	b.WriteString("    </div>\n")
	return b.String()
}

func elementStyle(el types.TextElement, headingFont string) string {
	return fmt.Sprintf(
		"position: absolute; left: %gpx; top: %gpx; width: %gpx; font-family: '%s', sans-serif; font-size: %gpx; font-weight: %s; color: %s; text-align: %s; line-height: %g;",
		el.X, el.Y, el.Width,
		firstNonEmpty(el.FontFamily, headingFont),
		nonZero(el.FontSize, 36),
		firstNonEmpty(el.FontWeight, "bold"),
		firstNonEmpty(el.Color, "#ffffff"),
		firstNonEmpty(el.TextAlign, "left"),
		nonZero(el.LineHeight, 1.3),
	)
}

func bulletListHTML(items []string, spacing string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "<li style=\"margin-bottom: %s;\">• %s</li>", spacing, html.EscapeString(item))
	}
	return b.String()
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func nonZero(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}
