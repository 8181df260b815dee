// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carouselpress/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return rn
}

func sampleSlides() []models.Slide {
	return []models.Slide{
		{Index: 0, Title: "Hook <script>", Subtitle: "Must Read", Body: models.TextBody("Why **this** matters"), Layout: models.LayoutCover},
		{Index: 1, Title: "Steps", Body: models.BulletBody("Plan *early*", "Ship"), Layout: models.LayoutList},
		{Index: 2, Title: "Numbers", Body: models.TextBody("hidden body"), Stats: []models.Stat{{Value: "45%", Label: "Growth"}}, Layout: models.LayoutData},
		{Index: 3, Title: "Talk to us", Layout: models.LayoutCTA},
	}
}

func TestAnchor(t *testing.T) {
	if got := Anchor(0); got != "slide-1" {
		t.Errorf("Anchor(0) = %q", got)
	}
	got := Anchors(3)
	if strings.Join(got, ",") != "slide-1,slide-2,slide-3" {
		t.Errorf("Anchors(3) = %v", got)
	}
}

func TestDocument(t *testing.T) {
	rn := newRenderer(t)
	style := models.DefaultStyle()
	style.BrandName = "Acme"

	doc, err := rn.Document(sampleSlides(), style)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	html := string(doc)

	for _, want := range []string{
		`id="slide-1"`, `id="slide-4"`,
		`class="slide layout-cover bg-gradient"`,
		`--primary: #714B67`,
		`<strong>this</strong>`,
		`<li>Plan <em>early</em></li>`,
		`<div class="value">45%</div>`,
		`Swipe →`, `Link in bio`,
		`<span class="brand">Acme</span>`,
		`<span class="page">2/4</span>`,
		`fonts.googleapis.com/css2?family=Inter`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(html, "hidden body") {
		t.Error("data slide body should not be rendered")
	}
	if strings.Contains(html, "<script>") {
		t.Error("title was not escaped")
	}
	if strings.Index(html, `id="slide-2"`) > strings.Index(html, `id="slide-3"`) {
		t.Error("slides out of order")
	}
}

func TestDocumentLogo(t *testing.T) {
	rn := newRenderer(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatal(err)
	}

	style := models.DefaultStyle()
	style.LogoPath = path
	doc, err := rn.Document(sampleSlides()[:1], style)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), `src="data:image/png;base64,`) {
		t.Error("logo should be inlined as a data URI")
	}

	style.LogoPath = filepath.Join(t.TempDir(), "missing.png")
	doc, err = rn.Document(sampleSlides()[:1], style)
	if err != nil {
		t.Fatalf("missing logo should not fail: %v", err)
	}
	if !strings.Contains(string(doc), `class="brand"`) {
		t.Error("missing logo should fall back to the brand name")
	}
}

func TestDocumentRejectsBadCSS(t *testing.T) {
	rn := newRenderer(t)
	style := models.DefaultStyle()
	style.FontFamily = `Inter"; } body { display:none`

	doc, err := rn.Document(sampleSlides()[:1], style)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(doc), `Inter";`) {
		t.Error("font family was not sanitised")
	}
}
