// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"path/filepath"
	"strings"
	"testing"

	"carouselpress/internal/models"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		url       string
		wantError bool
	}{
		{"text only", "Some story", "", false},
		{"url only", "", "https://youtu.be/dQw4w9WgXcQ", false},
		{"both empty", "", "", true},
		{"whitespace only", "  \n\t", "   ", true},
		{"text too long", strings.Repeat("a", 100_001), "", true},
		{"multibyte at limit", strings.Repeat("é", 100_000), "", false},
		{"url too long", "", "https://example.com/" + strings.Repeat("a", 2048), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateSource(tt.text, tt.url)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateSlides(t *testing.T) {
	ok := models.Slide{Title: "Hello", Body: models.TextBody("World")}
	many := func(n int) []models.Slide {
		out := make([]models.Slide, n)
		for i := range out {
			out[i] = ok
		}
		return out
	}
	bullets := make([]string, 9)
	for i := range bullets {
		bullets[i] = "item"
	}

	tests := []struct {
		name      string
		slides    []models.Slide
		wantError bool
	}{
		{"valid", many(5), false},
		{"empty", nil, true},
		{"too many", many(11), true},
		{"max slides", many(10), false},
		{"title too long", []models.Slide{{Title: strings.Repeat("a", 201)}}, true},
		{"subtitle too long", []models.Slide{{Subtitle: strings.Repeat("a", 121)}}, true},
		{"body too long", []models.Slide{{Body: models.TextBody(strings.Repeat("a", 2001))}}, true},
		{"too many bullets", []models.Slide{{Body: models.BulletBody(bullets...)}}, true},
		{"too many stats", []models.Slide{{Stats: make([]models.Stat, 5)}}, true},
		{"stat too long", []models.Slide{{Stats: []models.Stat{{Value: strings.Repeat("9", 61)}}}}, true},
		{"unknown layout", []models.Slide{{Title: "x", Layout: "carousel"}}, true},
		{"empty layout allowed", []models.Slide{{Title: "x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateSlides(tt.slides)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateStyle(t *testing.T) {
	base := models.DefaultStyle()
	with := func(f func(*models.StyleConfig)) models.StyleConfig {
		s := base
		f(&s)
		return s
	}

	tests := []struct {
		name      string
		style     models.StyleConfig
		assetDir  string
		wantError bool
	}{
		{"default", base, "", false},
		{"bad color", with(func(s *models.StyleConfig) { s.PrimaryColor = "purple-ish" }), "", true},
		{"short hex", with(func(s *models.StyleConfig) { s.PrimaryColor = "#abc" }), "", false},
		{"handle too long", with(func(s *models.StyleConfig) { s.AuthorHandle = strings.Repeat("a", 61) }), "", true},
		{"brand too long", with(func(s *models.StyleConfig) { s.BrandName = strings.Repeat("a", 81) }), "", true},
		{"link https", with(func(s *models.StyleConfig) { s.LinkURL = "https://example.com/book" }), "", false},
		{"link javascript", with(func(s *models.StyleConfig) { s.LinkURL = "javascript:alert(1)" }), "", true},
		{"link relative", with(func(s *models.StyleConfig) { s.LinkURL = "/book" }), "", true},
		{"logo without asset dir", with(func(s *models.StyleConfig) { s.LogoPath = "logo.png" }), "", true},
		{"logo in asset dir", with(func(s *models.StyleConfig) { s.LogoPath = "brand/logo.png" }), "/srv/assets", false},
		{"logo escapes", with(func(s *models.StyleConfig) { s.LogoPath = "../secret.png" }), "/srv/assets", true},
		{"logo absolute", with(func(s *models.StyleConfig) { s.LogoPath = "/etc/passwd" }), "/srv/assets", true},
		{"background escapes", with(func(s *models.StyleConfig) { s.BackgroundPath = "a/../../b.jpg" }), "/srv/assets", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateStyle(tt.style, tt.assetDir)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestResolveStyle(t *testing.T) {
	dir := t.TempDir()
	s := models.DefaultStyle()
	s.LogoPath = "logo.png"
	s.BackgroundPath = "bg/photo.jpg"

	got, err := resolveStyle(s, dir)
	if err != nil {
		t.Fatalf("resolveStyle: %v", err)
	}
	if got.LogoPath != filepath.Join(dir, "logo.png") {
		t.Errorf("LogoPath = %q", got.LogoPath)
	}
	if got.BackgroundPath != filepath.Join(dir, "bg", "photo.jpg") {
		t.Errorf("BackgroundPath = %q", got.BackgroundPath)
	}
	if s.LogoPath != "logo.png" {
		t.Error("resolveStyle modified its input")
	}

	empty, err := resolveStyle(models.DefaultStyle(), "")
	if err != nil || empty.LogoPath != "" {
		t.Errorf("style without assets: %+v, %v", empty, err)
	}
}
