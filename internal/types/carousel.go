// Package types provides type definitions for structured data used throughout the carousel-studio system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Carousel is one generation unit: an ordered set of slides rendered
// against a client's brand kit.
type Carousel struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	Title       string          `json:"title"`
	StylePreset string          `json:"style_preset"`
	Status      Status          `json:"status"`
	Layout      *LayoutDocument `json:"layout,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Slide belongs to exactly one carousel, ordered by Position (1-based,
// unique within a carousel). Content fields are authored before the
// pipeline runs; the three image URLs are written by the pipeline stages.
type Slide struct {
	ID          uuid.UUID `json:"id"`
	CarouselID  uuid.UUID `json:"carousel_id"`
	Position    int       `json:"position"`
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline,omitempty"`
	Bullets     []string  `json:"bullets,omitempty"`
	CTAText     string    `json:"cta_text,omitempty"`
	BGURL       string    `json:"bg_url,omitempty"`
	BGPrompt    string    `json:"bg_prompt,omitempty"`
	PreviewURL  string    `json:"preview_url,omitempty"`
	HiresURL    string    `json:"hires_url,omitempty"`
}

// Project groups carousels under a client. Read-only from the pipeline's
// perspective.
type Project struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

// BrandColors holds a client's brand palette.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// BrandFonts holds a client's font choices.
type BrandFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Client carries the brand data the generation stages read.
type Client struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	BrandColors BrandColors `json:"brand_colors"`
	BrandFonts  BrandFonts  `json:"brand_fonts"`
	LogoURL     string      `json:"logo_url,omitempty"`
}

// Brand defaults applied when a client leaves fields unset.
const (
	DefaultPrimaryColor   = "#1a1a2e"
	DefaultSecondaryColor = "#16213e"
	DefaultAccentColor    = "#e94560"
	DefaultFont           = "Inter"
	DefaultStylePreset    = "modern_clean"
)

// PrimaryOrDefault returns the primary brand color, falling back to the default.
func (c BrandColors) PrimaryOrDefault() string {
	if c.Primary == "" {
		return DefaultPrimaryColor
	}
	return c.Primary
}

// SecondaryOrDefault returns the secondary brand color, falling back to the default.
func (c BrandColors) SecondaryOrDefault() string {
	if c.Secondary == "" {
		return DefaultSecondaryColor
	}
	return c.Secondary
}

// AccentOrDefault returns the accent brand color, falling back to the default.
func (c BrandColors) AccentOrDefault() string {
	if c.Accent == "" {
		return DefaultAccentColor
	}
	return c.Accent
}

// HeadingOrDefault returns the heading font, falling back to the default.
func (f BrandFonts) HeadingOrDefault() string {
	if f.Heading == "" {
		return DefaultFont
	}
	return f.Heading
}

// BodyOrDefault returns the body font, falling back to the default.
func (f BrandFonts) BodyOrDefault() string {
	if f.Body == "" {
		return DefaultFont
	}
	return f.Body
}

// CarouselBundle is a carousel fetched together with its relations: the
// slides in ascending position order and the owning project and client.
type CarouselBundle struct {
	Carousel Carousel `json:"carousel"`
	Slides   []Slide  `json:"slides"`
	Project  Project  `json:"project"`
	Client   Client   `json:"client"`
}
