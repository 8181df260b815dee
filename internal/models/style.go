// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// BackgroundMode selects how the slide background is painted.
type BackgroundMode string

const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundImage    BackgroundMode = "image"
	BackgroundPattern  BackgroundMode = "pattern"
)

// ParseBackgroundMode accepts the slug or the long labels used by the
// form ("Gradient Pattern", "Uploaded Image", ...). Unknown values fall
// back to gradient.
func ParseBackgroundMode(s string) BackgroundMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid", "solid color":
		return BackgroundSolid
	case "image", "uploaded image":
		return BackgroundImage
	case "pattern", "geometric pattern":
		return BackgroundPattern
	default:
		return BackgroundGradient
	}
}

// ExportFormat is the raster encoding for slide artifacts.
type ExportFormat string

const (
	FormatPNG  ExportFormat = "png"
	FormatJPEG ExportFormat = "jpeg"
)

// ParseExportFormat returns the format and its file extension. WebP is not
// offered because only a decoder is available.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Ext returns the file extension without the dot.
func (f ExportFormat) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return "png"
}

// ContentType returns the MIME type.
func (f ExportFormat) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Resolutions maps preset names to square pixel sizes.
var Resolutions = map[string]int{
	"LinkedIn Standard": 1080,
	"High Quality":      2160,
	"Print Quality":     3240,
}

// ColorScheme is a named primary/secondary pair.
type ColorScheme struct {
	Name        string `json:"name"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Description string `json:"description"`
}

// ColorSchemes are the built-in brand palettes.
var ColorSchemes = []ColorScheme{
	{Name: "Modern Tech", Primary: "#714B67", Secondary: "#017E84", Description: "Professional purple and teal"},
	{Name: "Startup Orange", Primary: "#FF6B35", Secondary: "#004E89", Description: "Energetic orange and navy"},
	{Name: "Corporate Navy", Primary: "#1E3A8A", Secondary: "#10B981", Description: "Traditional navy and green"},
	{Name: "Creative Magenta", Primary: "#D946EF", Secondary: "#F59E0B", Description: "Bold magenta and amber"},
	{Name: "Professional Slate", Primary: "#475569", Secondary: "#0EA5E9", Description: "Neutral slate and sky blue"},
	{Name: "Elegant Violet", Primary: "#7C3AED", Secondary: "#EC4899", Description: "Vibrant violet and pink"},
}

// FindColorScheme looks a scheme up by name, case insensitively.
func FindColorScheme(name string) (ColorScheme, bool) {
	for _, cs := range ColorSchemes {
		if strings.EqualFold(cs.Name, strings.TrimSpace(name)) {
			return cs, true
		}
	}
	return ColorScheme{}, false
}

// FontFamilies are the families offered by the form. Any other family name
// is still accepted and resolved against the font directory.
var FontFamilies = []string{"Inter", "Poppins", "Montserrat", "Roboto", "Space Grotesk"}

// StyleConfig is the read-only branding shared by every slide of one
// carousel. It is passed by value.
type StyleConfig struct {
	PrimaryColor    string         `json:"primary_color"`
	SecondaryColor  string         `json:"secondary_color"`
	BackgroundColor string         `json:"background_color"`
	TextColor       string         `json:"text_color"`
	FontFamily      string         `json:"font_family"`
	AuthorHandle    string         `json:"author_handle"`
	BrandName       string         `json:"brand_name"`
	LogoPath        string         `json:"logo_path,omitempty"`
	BackgroundPath  string         `json:"background_path,omitempty"`
	BackgroundAlpha float64        `json:"background_opacity"`
	BackgroundMode  BackgroundMode `json:"background_mode"`
	LinkURL         string         `json:"link_url,omitempty"`
	ShowProgress    bool           `json:"show_progress"`
}

// DefaultStyle returns the "Modern Tech" look with a gradient background.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		PrimaryColor:    "#714B67",
		SecondaryColor:  "#017E84",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#1F2937",
		FontFamily:      "Inter",
		AuthorHandle:    "@metamorphosis",
		BrandName:       "Metamorphosis",
		BackgroundAlpha: 0.15,
		BackgroundMode:  BackgroundGradient,
		ShowProgress:    true,
	}
}

// WithScheme returns a copy using the named scheme's colors.
func (s StyleConfig) WithScheme(cs ColorScheme) StyleConfig {
	s.PrimaryColor = cs.Primary
	s.SecondaryColor = cs.Secondary
	return s
}

// Normalized returns a copy with defaults filled in, colors canonicalised
// to "#RRGGBB" and opacity clamped to [0,1]. It returns an error only for
// colors that are present but unparseable.
func (s StyleConfig) Normalized() (StyleConfig, error) {
	def := DefaultStyle()

	fields := []struct {
		name string
		val  *string
		def  string
	}{
		{"primary_color", &s.PrimaryColor, def.PrimaryColor},
		{"secondary_color", &s.SecondaryColor, def.SecondaryColor},
		{"background_color", &s.BackgroundColor, def.BackgroundColor},
		{"text_color", &s.TextColor, def.TextColor},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.val) == "" {
			*f.val = f.def
			continue
		}
		c, err := ParseHexColor(*f.val)
		if err != nil {
			return s, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.val = HexString(c)
	}

	if strings.TrimSpace(s.FontFamily) == "" {
		s.FontFamily = def.FontFamily
	}
	if s.BrandName == "" {
		s.BrandName = def.BrandName
	}
	if s.BackgroundMode == "" {
		s.BackgroundMode = def.BackgroundMode
	} else {
		s.BackgroundMode = ParseBackgroundMode(string(s.BackgroundMode))
	}
	if s.BackgroundAlpha < 0 {
		s.BackgroundAlpha = 0
	}
	if s.BackgroundAlpha > 1 {
		s.BackgroundAlpha = 1
	}
	return s, nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the "#" is
// optional).
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(h) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexString formats an opaque color as "#RRGGBB".
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MustColor parses s and falls back to fallback on error. Renderers use it
// so a bad color never aborts a slide.
func MustColor(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
