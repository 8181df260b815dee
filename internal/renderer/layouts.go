// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import (
	"image/color"
	"strings"

	"carouselpress/internal/models"
)

const (
	bulletMarker = "•"
	quoteGlyph   = "“"
)

// drawContent dispatches on the slide layout. Unknown tags render with
// the plain default arrangement.
func drawContent(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	switch s.Layout {
	case models.LayoutCover:
		drawCover(c, th, s, comp)
	case models.LayoutQuote:
		drawQuote(c, th, s, comp)
	case models.LayoutList:
		drawList(c, th, s, comp)
	case models.LayoutData:
		drawData(c, th, s, comp)
	case models.LayoutSplit:
		drawSplit(c, th, s, comp)
	case models.LayoutCTA:
		drawCTA(c, th, s, comp)
	default:
		drawDefault(c, th, s, comp)
	}
}

// subtitle draws the eyebrow label in the secondary accent.
func subtitle(c *canvas, th *Theme, s models.Slide, y float64, a align, comp *Composition) float64 {
	if s.Subtitle == "" {
		return y
	}
	x := marginX
	if a == alignCenter {
		x = refSize / 2
	}
	c.text(strings.ToUpper(s.Subtitle), c.face(Bold, subtitleSize), th.pal.secondary, x, y, a)
	comp.SubtitleText = s.Subtitle
	return y + subtitleAdvance
}

// title draws the wrapped heading.
func title(c *canvas, th *Theme, s models.Slide, y, size float64, a align, comp *Composition) float64 {
	if s.Title == "" {
		return y
	}
	x := marginX
	if a == alignCenter {
		x = refSize / 2
	}
	lines, y := c.block(s.Title, c.face(Bold, size), th.pal.text, x, y, contentWidth, titleSpacing, a)
	comp.TitleLines = lines
	return y + blockGap
}

// paragraph draws text as wrapped lines starting at (x, y).
func paragraph(c *canvas, text string, w Weight, size float64, col color.Color, x, y, width float64, a align, comp *Composition) float64 {
	if text == "" {
		return y
	}
	lines, y := c.block(text, c.face(w, size), col, x, y, width, bodySpacing, a)
	comp.Paragraph = append(comp.Paragraph, lines...)
	return y
}

// bullets draws each item behind a marker, indented from x and wrapped to
// the narrower width, with a gap between items.
func bullets(c *canvas, th *Theme, items []string, x, y, width float64, comp *Composition) float64 {
	f := c.face(Regular, bulletSize)
	marker := c.face(Bold, bulletSize)
	for i, it := range items {
		if i > 0 {
			y += bulletGap
		}
		c.text(bulletMarker, marker, th.pal.primary, x, y, alignLeft)
		var lines []string
		lines, y = c.block(it, f, th.pal.text, x+bulletIndent, y, width-bulletIndent, bodySpacing, alignLeft)
		comp.Bullets = append(comp.Bullets, lines)
	}
	return y
}

// body draws a paragraph or bullet body in the content column.
func body(c *canvas, th *Theme, b models.Body, x, y, width float64, comp *Composition) float64 {
	switch b.Kind() {
	case models.BodyBullets:
		return bullets(c, th, b.Bullets(), x, y, width, comp)
	case models.BodyText:
		return paragraph(c, b.Text(), Regular, bodySize, th.pal.text, x, y, width, alignLeft, comp)
	}
	return y
}

func drawDefault(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := subtitle(c, th, s, contentTop, alignLeft, comp)
	y = title(c, th, s, y, titleSize, alignLeft, comp)
	body(c, th, s.Body, marginX, y, contentWidth, comp)
}

// drawCover puts the subtitle in a filled pill above an oversized title.
func drawCover(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := 290.0
	if s.Subtitle != "" {
		f := c.face(Bold, subtitleSize)
		label := strings.ToUpper(s.Subtitle)
		h := c.lineHeight(f)
		w := c.measure(f)(label)
		c.fillRoundRect(marginX, y, w+48, h+24, (h+24)/2, th.pal.primary)
		c.text(label, f, th.pal.onAccent, marginX+24, y+12, alignLeft)
		comp.SubtitleText = s.Subtitle
		y += h + 24 + 40
	}
	y = title(c, th, s, y, coverTitleSize, alignLeft, comp)
	paragraph(c, s.Body.PlainText(), Regular, bodySize, th.pal.muted, marginX, y, contentWidth, alignLeft, comp)
}

// drawQuote sets the body as a pull quote under a large quote glyph.
func drawQuote(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := subtitle(c, th, s, contentTop, alignLeft, comp)
	y = title(c, th, s, y, titleSize*0.8, alignLeft, comp)

	glyph := c.face(Bold, quoteGlyphSize)
	c.text(quoteGlyph, glyph, withAlpha(th.pal.secondary, 0.45), marginX-8, y-40, alignLeft)
	y += 110

	text := strings.Join(strings.Split(s.Body.PlainText(), "\n"), " ")
	top := y
	y = paragraph(c, text, Bold, quoteSize, th.pal.text, marginX+36, y, contentWidth-36, alignLeft, comp)
	if y > top {
		c.fillRect(marginX, top, 8, y-top-12, th.pal.primary)
	}
}

func drawList(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := subtitle(c, th, s, contentTop, alignLeft, comp)
	y = title(c, th, s, y, titleSize, alignLeft, comp)
	body(c, th, s.Body.AsBullets(), marginX, y+8, contentWidth, comp)
}

// drawData renders stat boxes and ignores the body. A data slide without
// stats falls back to its body so nothing is lost.
func drawData(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := subtitle(c, th, s, contentTop, alignLeft, comp)
	y = title(c, th, s, y, titleSize, alignLeft, comp)
	if !s.HasStats() {
		body(c, th, s.Body, marginX, y, contentWidth, comp)
		return
	}
	statBoxes(c, th, s.Stats, y+8, comp)
}

// statBoxes lays stats out in one column for up to two and a two-column
// grid beyond that, each box with a colored accent bar on its left edge.
func statBoxes(c *canvas, th *Theme, stats []models.Stat, y float64, comp *Composition) float64 {
	var shown []models.Stat
	for _, st := range stats {
		if strings.TrimSpace(st.Value) != "" {
			shown = append(shown, st)
		}
	}
	cols := 1
	if len(shown) > 2 {
		cols = 2
	}
	boxW := (contentWidth - float64(cols-1)*statGap) / float64(cols)

	valueFace := c.face(Bold, statValueSize)
	labelFace := c.face(Regular, statLabelSize)
	for i, st := range shown {
		x := marginX + float64(i%cols)*(boxW+statGap)
		top := y + float64(i/cols)*(statBoxHeight+statGap)

		c.fillRoundRect(x, top, boxW, statBoxHeight, 14, withAlpha(th.pal.primary, 0.08))
		c.fillRect(x, top, statAccentWidth, statBoxHeight, th.pal.primary)
		c.text(st.Value, valueFace, th.pal.primary, x+statPadX, top+18, alignLeft)
		c.text(st.Label, labelFace, th.pal.muted, x+statPadX, top+18+c.lineHeight(valueFace)+6, alignLeft)
	}
	comp.Stats = shown

	rows := (len(shown) + cols - 1) / cols
	return y + float64(rows)*(statBoxHeight+statGap)
}

// drawSplit puts the title on top and the body inside a tinted panel with
// a secondary accent stripe.
func drawSplit(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := subtitle(c, th, s, contentTop, alignLeft, comp)
	y = title(c, th, s, y, titleSize, alignLeft, comp)

	bottom := footerDividerY - 40
	if y < bottom-80 {
		c.fillRoundRect(marginX, y, contentWidth, bottom-y, 18, withAlpha(th.pal.secondary, 0.09))
		c.fillRect(marginX, y, 12, bottom-y, th.pal.secondary)
	}
	body(c, th, s.Body, marginX+panelPad, y+panelPad, contentWidth-2*panelPad, comp)
}

// drawCTA centers everything and adds the link QR code when configured.
func drawCTA(c *canvas, th *Theme, s models.Slide, comp *Composition) {
	y := 320.0
	if th.qr != nil {
		y = 230
	}
	y = subtitle(c, th, s, y, alignCenter, comp)
	y = title(c, th, s, y, ctaTitleSize, alignCenter, comp)
	y = paragraph(c, s.Body.PlainText(), Regular, bodySize, th.pal.muted, refSize/2, y, contentWidth, alignCenter, comp)

	if th.qr != nil {
		y += 24
		pad := 16.0
		c.fillRoundRect(refSize/2-qrSize/2-pad, y-pad, qrSize+2*pad, qrSize+2*pad, 12, th.pal.onAccent)
		c.image(th.qr, refSize/2-qrSize/2, y)
		comp.QRCode = true
	}
}
