// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"carouselpress/internal/models"
)

func testRun(created time.Time) *models.Run {
	return &models.Run{
		ID:            uuid.New(),
		Archetype:     models.ArchetypeDataInsight,
		Source:        "test-heuristic",
		Target:        "raster",
		SlideCount:    5,
		RenderedCount: 4,
		Warnings:      []string{"render slide_3: panic: boom"},
		ArchiveKey:    "runs/carousel.zip",
		CreatedAt:     created.UTC().Truncate(time.Microsecond),
	}
}

func TestRunRecordAndFind(t *testing.T) {
	s := NewRunStore(testDB(t))
	ctx := context.Background()

	run := testRun(time.Now())
	if err := s.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.FindByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	if got.Archetype != run.Archetype || got.RenderedCount != 4 || got.ArchiveKey != run.ArchiveKey {
		t.Errorf("got %+v", got)
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != run.Warnings[0] {
		t.Errorf("warnings = %q", got.Warnings)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if !got.Partial() {
		t.Error("expected partial run")
	}

	// Recording the same ID again is ignored.
	if err := s.Record(ctx, run); err != nil {
		t.Errorf("duplicate Record: %v", err)
	}
}

func TestRunFindMissing(t *testing.T) {
	s := NewRunStore(testDB(t))
	got, err := s.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestRunNilWarnings(t *testing.T) {
	s := NewRunStore(testDB(t))
	ctx := context.Background()

	run := testRun(time.Now())
	run.Warnings = nil
	if err := s.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := s.FindByID(ctx, run.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("warnings = %q", got.Warnings)
	}
}

func TestRunRecent(t *testing.T) {
	s := NewRunStore(testDB(t))
	ctx := context.Background()

	base := time.Now().Add(time.Hour)
	older, newer := testRun(base), testRun(base.Add(time.Minute))
	for _, r := range []*models.Run{older, newer} {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].ID != newer.ID || runs[1].ID != older.ID {
		t.Errorf("order = %s, %s", runs[0].ID, runs[1].ID)
	}
}
