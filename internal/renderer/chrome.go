// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import (
	"image/color"

	"github.com/fogleman/gg"

	"carouselpress/internal/imaging"
	"carouselpress/internal/models"
)

// drawBackground paints the full canvas for the theme's background mode.
// An image mode without a usable image was already reported by Prepare
// and paints the solid fill.
func drawBackground(c *canvas, th *Theme) {
	c.fillRect(0, 0, refSize, refSize, th.pal.bg)

	switch th.style.BackgroundMode {
	case models.BackgroundGradient:
		drawBlob(c, refSize*0.88, refSize*0.12, 560, th.pal.primary, 0.30)
		drawBlob(c, refSize*0.08, refSize*0.92, 600, th.pal.secondary, 0.26)
	case models.BackgroundImage:
		if th.background != nil {
			imaging.Blend(c.img, th.background, th.style.BackgroundAlpha)
		}
	case models.BackgroundPattern:
		drawPattern(c, th)
	}
}

// drawBlob fakes a blurred color blob with a radial gradient that fades
// to transparent.
func drawBlob(c *canvas, x, y, r float64, col color.RGBA, alpha float64) {
	g := gg.NewRadialGradient(c.px(x), c.px(y), 0, c.px(x), c.px(y), c.px(r))
	g.AddColorStop(0, withAlpha(col, alpha))
	g.AddColorStop(1, withAlpha(col, 0))
	c.dc.SetFillStyle(g)
	c.dc.DrawRectangle(0, 0, c.px(refSize), c.px(refSize))
	c.dc.Fill()
}

// drawPattern draws concentric rings and diagonal hairlines in the accent
// colors.
func drawPattern(c *canvas, th *Theme) {
	ring := withAlpha(th.pal.primary, 0.10)
	for i, r := range []float64{120, 200, 280, 360} {
		c.circle(refSize-60, 60, r, 3+float64(i), ring)
	}
	for _, r := range []float64{90, 170, 250} {
		c.circle(40, refSize-40, r, 3, withAlpha(th.pal.secondary, 0.10))
	}
	hair := withAlpha(th.pal.secondary, 0.07)
	for x := -refSize; x < refSize; x += 72 {
		c.line(x, refSize, x+refSize, 0, 2, hair)
	}
}

// drawHeader places the logo, or the brand name when there is no logo,
// at the top left and the page indicator at the top right.
func drawHeader(c *canvas, th *Theme, page models.PageInfo, comp *Composition) {
	if th.logo != nil {
		c.image(th.logo, marginX, headerTop)
		comp.Logo = true
	} else {
		f := c.face(Bold, brandSize)
		y := headerTop + (logoHeight-c.lineHeight(f))/2
		c.text(th.style.BrandName, f, th.pal.primary, marginX, y, alignLeft)
		comp.Header = th.style.BrandName
	}

	f := c.face(Regular, pageSize)
	y := headerTop + (logoHeight-c.lineHeight(f))/2
	c.textRight(page.String(), f, th.pal.muted, refSize-marginX, y)
}

// drawFooter draws the divider, the handle and the swipe or final call to
// action.
func drawFooter(c *canvas, th *Theme, page models.PageInfo, comp *Composition) {
	c.line(marginX, footerDividerY, refSize-marginX, footerDividerY, 2, withAlpha(th.pal.muted, 0.35))

	handle := th.style.AuthorHandle
	if handle == "" {
		handle = th.style.BrandName
	}
	c.text(handle, c.face(Regular, footerSize), th.pal.muted, marginX, footerTextY, alignLeft)

	cta := SwipeCTA
	ctaFace, ctaColor := c.face(Regular, footerSize), th.pal.muted
	if page.IsLast() {
		cta = FinalCTA
		ctaFace, ctaColor = c.face(Bold, footerSize), th.pal.primary
	}
	c.textRight(cta, ctaFace, ctaColor, refSize-marginX, footerTextY)

	comp.Footer = FooterInfo{Handle: handle, CTA: cta}
}

// drawProgress fills a bar along the bottom edge in proportion to the
// page position.
func drawProgress(c *canvas, th *Theme, page models.PageInfo) {
	y := refSize - progressHeight
	c.fillRect(0, y, refSize, progressHeight, withAlpha(th.pal.muted, 0.18))
	if w := refSize * page.Progress(); w > 0 {
		c.fillRect(0, y, w, progressHeight, th.pal.primary)
	}
}
