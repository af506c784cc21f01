// Package db provides PostgreSQL database access for carousels, slides,
// prompt templates and the job ledgers.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by lookups. ErrTemplateNotFound is fatal for
// the stage that needs the template; callers do not retry it blindly.
var (
	ErrCarouselNotFound  = errors.New("carousel not found")
	ErrTemplateNotFound  = errors.New("prompt template not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
