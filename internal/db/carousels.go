package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marcus/carousel-studio/internal/types"
)

// GetCarouselBundle loads a carousel together with its slides (ascending
// position order), owning project and client in one read. Returns
// ErrCarouselNotFound when the identifier resolves to nothing.
func (db *DB) GetCarouselBundle(ctx context.Context, carouselID uuid.UUID) (*types.CarouselBundle, error) {
	var (
		bundle     types.CarouselBundle
		layoutJSON []byte
		colorsJSON []byte
		fontsJSON  []byte
	)

	err := db.pool.QueryRow(ctx,
		`SELECT c.id, c.project_id, c.title, c.style_preset, c.status, c.layout_json,
		        c.created_at, c.updated_at,
		        p.id, p.client_id, p.name,
		        cl.id, cl.name, cl.brand_colors, cl.brand_fonts, COALESCE(cl.logo_url, '')
		 FROM carousels c
		 JOIN projects p ON p.id = c.project_id
		 JOIN clients cl ON cl.id = p.client_id
		 WHERE c.id = $1`,
		carouselID,
	).Scan(
		&bundle.Carousel.ID, &bundle.Carousel.ProjectID, &bundle.Carousel.Title,
		&bundle.Carousel.StylePreset, &bundle.Carousel.Status, &layoutJSON,
		&bundle.Carousel.CreatedAt, &bundle.Carousel.UpdatedAt,
		&bundle.Project.ID, &bundle.Project.ClientID, &bundle.Project.Name,
		&bundle.Client.ID, &bundle.Client.Name, &colorsJSON, &fontsJSON, &bundle.Client.LogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("carousel %s: %w", carouselID, ErrCarouselNotFound)
		}
		return nil, fmt.Errorf("failed to get carousel: %w", err)
	}

	if len(layoutJSON) > 0 {
		var layout types.LayoutDocument
		if err := json.Unmarshal(layoutJSON, &layout); err != nil {
			return nil, fmt.Errorf("failed to decode layout: %w", err)
		}
		bundle.Carousel.Layout = &layout
	}
	if len(colorsJSON) > 0 {
		if err := json.Unmarshal(colorsJSON, &bundle.Client.BrandColors); err != nil {
			return nil, fmt.Errorf("failed to decode brand colors: %w", err)
		}
	}
	if len(fontsJSON) > 0 {
		if err := json.Unmarshal(fontsJSON, &bundle.Client.BrandFonts); err != nil {
			return nil, fmt.Errorf("failed to decode brand fonts: %w", err)
		}
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, carousel_id, position, headline, COALESCE(subheadline, ''),
		        COALESCE(bullets, '{}'), COALESCE(cta_text, ''),
		        COALESCE(bg_url, ''), COALESCE(bg_prompt, ''),
		        COALESCE(preview_url, ''), COALESCE(hires_url, '')
		 FROM slides
		 WHERE carousel_id = $1
		 ORDER BY position ASC`,
		carouselID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get slides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s types.Slide
		if err := rows.Scan(
			&s.ID, &s.CarouselID, &s.Position, &s.Headline, &s.Subheadline,
			&s.Bullets, &s.CTAText, &s.BGURL, &s.BGPrompt, &s.PreviewURL, &s.HiresURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		bundle.Slides = append(bundle.Slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read slides: %w", err)
	}

	return &bundle, nil
}

// GetCarouselStatus reads just the status column.
func (db *DB) GetCarouselStatus(ctx context.Context, carouselID uuid.UUID) (types.Status, error) {
	var status types.Status
	err := db.pool.QueryRow(ctx,
		`SELECT status FROM carousels WHERE id = $1`, carouselID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("carousel %s: %w", carouselID, ErrCarouselNotFound)
		}
		return "", fmt.Errorf("failed to get carousel status: %w", err)
	}
	return status, nil
}

// UpdateCarouselStatus moves a carousel to the given status after checking
// the transition against the lifecycle rules. The update is conditioned on
// the status it read, so a concurrent writer makes the update a no-op
// rather than a silent overwrite.
func (db *DB) UpdateCarouselStatus(ctx context.Context, carouselID uuid.UUID, to types.Status) error {
	from, err := db.GetCarouselStatus(ctx, carouselID)
	if err != nil {
		return err
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("carousel %s: %s -> %s: %w", carouselID, from, to, ErrInvalidTransition)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE carousels SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, carouselID, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update carousel status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("carousel %s: status changed concurrently: %w", carouselID, ErrInvalidTransition)
	}
	return nil
}

// SaveLayout persists the layout document produced by the layout stage.
func (db *DB) SaveLayout(ctx context.Context, carouselID uuid.UUID, layout *types.LayoutDocument) error {
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE carousels SET layout_json = $1, updated_at = NOW() WHERE id = $2`,
		layoutJSON, carouselID,
	)
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("carousel %s: %w", carouselID, ErrCarouselNotFound)
	}
	return nil
}
