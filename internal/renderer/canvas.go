// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Reference canvas geometry. Every value is in 1080-space.
const (
	refSize      = 1080.0
	marginX      = 80.0
	contentWidth = refSize - 2*marginX

	headerTop    = 56.0
	logoHeight   = 64.0
	logoMaxWidth = 320.0
	contentTop   = 200.0

	footerDividerY = 958.0
	footerTextY    = 992.0
	progressHeight = 10.0

	subtitleAdvance = 62.0
	titleSpacing    = 1.15
	bodySpacing     = 1.4
	blockGap        = 28.0

	bulletIndent = 52.0
	bulletGap    = 22.0

	statBoxHeight   = 150.0
	statGap         = 28.0
	statAccentWidth = 10.0
	statPadX        = 36.0

	panelPad = 44.0
	qrSize   = 200.0
)

// Type scale in 1080-space points.
const (
	brandSize      = 34.0
	pageSize       = 28.0
	subtitleSize   = 30.0
	titleSize      = 66.0
	coverTitleSize = 88.0
	ctaTitleSize   = 76.0
	bodySize       = 36.0
	bulletSize     = 34.0
	quoteSize      = 44.0
	quoteGlyphSize = 220.0
	statValueSize  = 64.0
	statLabelSize  = 26.0
	footerSize     = 28.0
)

// align positions a text line horizontally within its box.
type align int

const (
	alignLeft align = iota
	alignCenter
)

// canvas wraps a gg context with reference-unit helpers. It belongs to a
// single render and caches the faces it cuts.
type canvas struct {
	dc     *gg.Context
	img    *image.RGBA
	scale  float64
	book   *FontBook
	family string
	faces  map[FaceKey]font.Face
}

func (c *canvas) px(v float64) float64 { return v * c.scale }

// face returns a face for the canvas family at a reference point size.
func (c *canvas) face(w Weight, size float64) font.Face {
	k := FaceKey{Family: c.family, Weight: w, Size: size * c.scale}
	f, ok := c.faces[k]
	if !ok {
		f = c.book.Face(k)
		c.faces[k] = f
	}
	return f
}

// measure returns a width function in reference units for f.
func (c *canvas) measure(f font.Face) func(string) float64 {
	return func(s string) float64 {
		return float64(font.MeasureString(f, s)) / 64 / c.scale
	}
}

func (c *canvas) lineHeight(f font.Face) float64 {
	return float64(f.Metrics().Height) / 64 / c.scale
}

func (c *canvas) ascent(f font.Face) float64 {
	return float64(f.Metrics().Ascent) / 64 / c.scale
}

// text draws one line with its top edge at y.
func (c *canvas) text(s string, f font.Face, col color.Color, x, y float64, a align) {
	c.dc.SetFontFace(f)
	c.dc.SetColor(col)
	baseline := c.px(y + c.ascent(f))
	switch a {
	case alignCenter:
		c.dc.DrawStringAnchored(s, c.px(x), baseline, 0.5, 0)
	default:
		c.dc.DrawString(s, c.px(x), baseline)
	}
}

// textRight draws one line right-aligned at x with its top edge at y.
func (c *canvas) textRight(s string, f font.Face, col color.Color, x, y float64) {
	c.dc.SetFontFace(f)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, c.px(x), c.px(y+c.ascent(f)), 1, 0)
}

// block wraps s to width and draws it from y down. For centered text x is
// the center line. It returns the lines and the y below the block.
func (c *canvas) block(s string, f font.Face, col color.Color, x, y, width, spacing float64, a align) ([]string, float64) {
	lines := Wrap(s, width, c.measure(f))
	step := c.lineHeight(f) * spacing
	for _, l := range lines {
		c.text(l, f, col, x, y, a)
		y += step
	}
	return lines, y
}

func (c *canvas) fillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(c.px(x), c.px(y), c.px(w), c.px(h))
	c.dc.Fill()
}

func (c *canvas) fillRoundRect(x, y, w, h, r float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRoundedRectangle(c.px(x), c.px(y), c.px(w), c.px(h), c.px(r))
	c.dc.Fill()
}

func (c *canvas) line(x1, y1, x2, y2, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawLine(c.px(x1), c.px(y1), c.px(x2), c.px(y2))
	c.dc.Stroke()
}

func (c *canvas) circle(x, y, r, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawCircle(c.px(x), c.px(y), c.px(r))
	c.dc.Stroke()
}

// image draws img with its top-left corner at (x, y).
func (c *canvas) image(img image.Image, x, y float64) {
	c.dc.DrawImage(img, int(c.px(x)+0.5), int(c.px(y)+0.5))
}
