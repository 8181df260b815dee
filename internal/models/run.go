// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Run is the history record of one finished carousel generation. Slide
// content is not stored; only what is needed to find the artifacts and
// audit how the slides were planned.
type Run struct {
	ID            uuid.UUID `json:"id"`
	Archetype     Archetype `json:"archetype"`
	Source        string    `json:"source"`
	Model         string    `json:"model,omitempty"`
	Target        string    `json:"target"`
	SlideCount    int       `json:"slide_count"`
	RenderedCount int       `json:"rendered_count"`
	Warnings      []string  `json:"warnings"`
	ArchiveKey    string    `json:"archive_key,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Partial reports whether some slides failed to render.
func (r *Run) Partial() bool {
	return r.RenderedCount < r.SlideCount
}
