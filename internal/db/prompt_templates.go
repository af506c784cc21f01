package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PromptTemplate is a versioned prompt body stored in the database.
// Stages look templates up by prompt_id and only use active rows.
type PromptTemplate struct {
	PromptID string
	Template string
	IsActive bool
}

// GetActivePromptTemplate returns the active template for the given
// prompt identifier. A missing template is fatal for the stage that
// needs it, so the error wraps ErrTemplateNotFound.
func (db *DB) GetActivePromptTemplate(ctx context.Context, promptID string) (*PromptTemplate, error) {
	var tpl PromptTemplate
	err := db.pool.QueryRow(ctx,
		`SELECT prompt_id, template, is_active
		 FROM prompt_templates
		 WHERE prompt_id = $1 AND is_active = TRUE`,
		promptID,
	).Scan(&tpl.PromptID, &tpl.Template, &tpl.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", promptID, ErrTemplateNotFound)
		}
		return nil, fmt.Errorf("failed to get prompt template: %w", err)
	}
	return &tpl, nil
}

// UpsertPromptTemplate writes a template row, used to seed the default
// prompts. An existing row keeps its is_active flag only if the body is
// being replaced deliberately; seeding always activates.
func (db *DB) UpsertPromptTemplate(ctx context.Context, promptID, template string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO prompt_templates (prompt_id, template, is_active)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (prompt_id) DO UPDATE SET template = $2, is_active = TRUE`,
		promptID, template,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prompt template: %w", err)
	}
	return nil
}
