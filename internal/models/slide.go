// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the carousel domain types shared by the planner,
// layout selector, renderers and HTTP layer.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BodyKind discriminates the Body union.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyText
	BodyBullets
)

// String returns the kind name used in logs.
func (k BodyKind) String() string {
	switch k {
	case BodyText:
		return "text"
	case BodyBullets:
		return "bullets"
	default:
		return "none"
	}
}

// Body is either a single paragraph or an ordered bullet list, never both.
// The zero value is an empty body.
type Body struct {
	kind    BodyKind
	text    string
	bullets []string
}

// TextBody returns a paragraph body. Blank text yields an empty body.
func TextBody(s string) Body {
	s = strings.TrimSpace(s)
	if s == "" {
		return Body{}
	}
	return Body{kind: BodyText, text: s}
}

// BulletBody returns a bullet-list body. Blank items are dropped and an
// all-blank list yields an empty body.
func BulletBody(items ...string) Body {
	var kept []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return Body{}
	}
	return Body{kind: BodyBullets, bullets: kept}
}

// Kind reports which variant the body holds.
func (b Body) Kind() BodyKind { return b.kind }

// IsEmpty is true when there is nothing to render.
func (b Body) IsEmpty() bool { return b.kind == BodyNone }

// Text returns the paragraph, or "" for non-text bodies.
func (b Body) Text() string { return b.text }

// Bullets returns a copy of the bullet items, or nil for non-list bodies.
func (b Body) Bullets() []string {
	if b.kind != BodyBullets {
		return nil
	}
	out := make([]string, len(b.bullets))
	copy(out, b.bullets)
	return out
}

// AsBullets coerces a paragraph into a single-item list. Lists and empty
// bodies are returned unchanged.
func (b Body) AsBullets() Body {
	if b.kind == BodyText {
		return Body{kind: BodyBullets, bullets: []string{b.text}}
	}
	return b
}

// PlainText flattens the body for search and summaries.
func (b Body) PlainText() string {
	switch b.kind {
	case BodyText:
		return b.text
	case BodyBullets:
		return strings.Join(b.bullets, "\n")
	}
	return ""
}

// MarshalJSON encodes a paragraph as a string and a list as an array.
func (b Body) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case BodyText:
		return json.Marshal(b.text)
	case BodyBullets:
		return json.Marshal(b.bullets)
	}
	return []byte(`""`), nil
}

// UnmarshalJSON accepts a string, an array of strings, or null. Array
// elements that are not strings are formatted with %v so a model emitting
// numbers in a list does not fail the whole slide.
func (b *Body) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = Body{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("body: %w", err)
		}
		*b = TextBody(s)
		return nil
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("body: %w", err)
		}
		items := make([]string, 0, len(raw))
		for _, v := range raw {
			switch x := v.(type) {
			case string:
				items = append(items, x)
			case nil:
			default:
				items = append(items, fmt.Sprintf("%v", x))
			}
		}
		*b = BulletBody(items...)
		return nil
	}
	return fmt.Errorf("body: unsupported JSON value %s", truncateJSON(data))
}

func truncateJSON(data []byte) string {
	if len(data) > 40 {
		return string(data[:40]) + "..."
	}
	return string(data)
}

// Stat is one value/label pair on a data slide.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Slide is one structured content record, rendered to exactly one image.
type Slide struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     Body   `json:"body"`
	Stats    []Stat `json:"stats,omitempty"`
	Layout   Layout `json:"layout"`
}

// HasStats reports whether the slide carries at least one stat with a value.
func (s Slide) HasStats() bool {
	for _, st := range s.Stats {
		if strings.TrimSpace(st.Value) != "" {
			return true
		}
	}
	return false
}

// Name returns the 1-indexed user-facing artifact name, e.g. "slide_3".
func (s Slide) Name() string {
	return fmt.Sprintf("slide_%d", s.Index+1)
}

// PageInfo locates a slide inside its carousel. Page is 1-indexed.
type PageInfo struct {
	Page  int
	Total int
}

// IsLast is true for the terminal slide, which swaps the footer CTA.
func (p PageInfo) IsLast() bool { return p.Page >= p.Total }

// String formats the pagination indicator "{page}/{total}".
func (p PageInfo) String() string { return fmt.Sprintf("%d/%d", p.Page, p.Total) }

// Progress is page/total clamped to [0,1].
func (p PageInfo) Progress() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Page) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
