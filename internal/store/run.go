// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL repositories. The run history is
// written once per finished carousel and read back by the API.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"carouselpress/internal/models"
)

// MaxRecent caps Recent.
const MaxRecent = 100

// RunStore handles carousel run history.
type RunStore struct {
	db   *sql.DB
	pgtm *pgtype.Map
}

// NewRunStore creates a new RunStore with the given database connection.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db, pgtm: pgtype.NewMap()}
}

// Record inserts a finished run. A run ID is written at most once.
func (s *RunStore) Record(ctx context.Context, run *models.Run) error {
	warnings := run.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carousel_runs (id, archetype, source, model, target,
		                           slide_count, rendered_count, warnings,
		                           archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`, run.ID, run.Archetype, run.Source, run.Model, run.Target,
		run.SlideCount, run.RenderedCount, warnings,
		run.ArchiveKey, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

const runColumns = `id, archetype, source, model, target, slide_count,
	rendered_count, warnings, archive_key, created_at`

// FindByID retrieves a run by its UUID. Returns nil if not found.
func (s *RunStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	run, err := s.scan(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM carousel_runs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find run by id: %w", err)
	}
	return run, nil
}

// Recent returns the newest runs first, at most limit of them.
func (s *RunStore) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 || limit > MaxRecent {
		limit = MaxRecent
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM carousel_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *RunStore) scan(row scanner) (*models.Run, error) {
	var r models.Run
	err := row.Scan(
		&r.ID, &r.Archetype, &r.Source, &r.Model, &r.Target, &r.SlideCount,
		&r.RenderedCount, s.pgtm.SQLScanner(&r.Warnings), &r.ArchiveKey, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
