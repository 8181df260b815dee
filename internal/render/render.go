// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render builds the single HTML document that holds every slide
// of a carousel. Each slide is an element with a stable 1-indexed anchor
// so an external screenshot back end can capture it.
package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"carouselpress/internal/markdown"
	"carouselpress/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// ContentType is the MIME type of a rendered document.
const ContentType = "text/html; charset=utf-8"

// fontURLs maps the offered families to their web font stylesheets.
var fontURLs = map[string]string{
	"Inter":         "https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700;800;900&display=swap",
	"Poppins":       "https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;500;600;700;800;900&display=swap",
	"Montserrat":    "https://fonts.googleapis.com/css2?family=Montserrat:wght@300;400;500;600;700;800;900&display=swap",
	"Roboto":        "https://fonts.googleapis.com/css2?family=Roboto:wght@300;400;500;700;900&display=swap",
	"Space Grotesk": "https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@300;400;500;600;700&display=swap",
}

// Capturer turns a carousel document into one raster per anchor. The
// returned map is keyed by anchor. Implementations drive a headless
// browser or a screenshot service; none is bundled.
type Capturer interface {
	Capture(ctx context.Context, doc []byte, anchors []string) (map[string][]byte, error)
}

// Anchor returns the element id of the slide at index i, e.g. "slide-1".
func Anchor(i int) string {
	return fmt.Sprintf("slide-%d", i+1)
}

// Anchors returns the ids of the first n slides in order.
func Anchors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = Anchor(i)
	}
	return out
}

// SlideView is one slide as the template sees it.
type SlideView struct {
	Anchor   string
	Class    string
	Page     models.PageInfo
	Title    string
	Subtitle string
	Body     template.HTML
	Bullets  []template.HTML
	Stats    []models.Stat
	CTA      string
	Progress float64
}

// DocumentData holds everything passed to carousel.html.
type DocumentData struct {
	Slides  []SlideView
	Style   models.StyleConfig
	FontURL string
	Logo    template.URL
}

// Renderer executes the embedded carousel template.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded template.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"percent": func(f float64) template.CSS {
			return template.CSS(fmt.Sprintf("%.1f%%", f*100))
		},
		// cssColor only lets canonical hex colors into the stylesheet.
		"cssColor": func(s string) template.CSS {
			c, err := models.ParseHexColor(s)
			if err != nil {
				return template.CSS("inherit")
			}
			return template.CSS(models.HexString(c))
		},
		"cssFont": func(s string) template.CSS {
			return template.CSS(strings.Map(func(r rune) rune {
				if strings.ContainsRune("\"';<>{}\\", r) {
					return -1
				}
				return r
			}, s))
		},
	}

	tmpl, err := template.New("carousel.html").Funcs(funcMap).ParseFS(templateFS, "templates/carousel.html")
	if err != nil {
		return nil, fmt.Errorf("parse template carousel.html: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Document renders every slide into one HTML document. Slide bodies are
// treated as Markdown. A logo that cannot be read is left out and the
// brand name is shown instead.
func (rn *Renderer) Document(slides []models.Slide, style models.StyleConfig) ([]byte, error) {
	if norm, err := style.Normalized(); err == nil {
		style = norm
	}

	data := DocumentData{
		Style:   style,
		FontURL: fontURLs[style.FontFamily],
	}
	if style.LogoPath != "" {
		uri, err := dataURI(style.LogoPath)
		if err != nil {
			slog.Warn("logo unavailable for document, using brand name", "path", style.LogoPath, "error", err)
		} else {
			data.Logo = uri
		}
	}

	total := len(slides)
	for i, s := range slides {
		page := models.PageInfo{Page: i + 1, Total: total}
		v := SlideView{
			Anchor:   Anchor(i),
			Class:    s.Layout.Class(),
			Page:     page,
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Progress: page.Progress(),
			CTA:      "Swipe →",
		}
		if page.IsLast() {
			v.CTA = "Link in bio"
		}
		if s.Layout.IsStats() && s.HasStats() {
			v.Stats = s.Stats
		} else {
			if err := fillBody(&v, s.Body); err != nil {
				return nil, fmt.Errorf("slide %d body: %w", i+1, err)
			}
		}
		data.Slides = append(data.Slides, v)
	}

	var buf bytes.Buffer
	if err := rn.Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write executes the template with prepared data.
func (rn *Renderer) Write(w io.Writer, data DocumentData) error {
	if err := rn.tmpl.ExecuteTemplate(w, "carousel.html", data); err != nil {
		return fmt.Errorf("execute carousel template: %w", err)
	}
	return nil
}

func fillBody(v *SlideView, b models.Body) error {
	switch b.Kind() {
	case models.BodyText:
		h, err := markdown.InlineHTML(b.Text())
		if err != nil {
			return err
		}
		v.Body = template.HTML(h)
	case models.BodyBullets:
		for _, it := range b.Bullets() {
			h, err := markdown.InlineHTML(it)
			if err != nil {
				return err
			}
			v.Bullets = append(v.Bullets, template.HTML(h))
		}
	}
	return nil
}

// dataURI inlines an image file so the document is self-contained.
func dataURI(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("not an image: %s", ct)
	}
	return template.URL("data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}
