// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package renderer draws one slide onto a square raster canvas. All
// positions are expressed on a 1080-unit reference canvas and scaled to
// the configured pixel size, so a 2160 render is the 1080 render at twice
// the density.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"

	"carouselpress/internal/imaging"
	"carouselpress/internal/models"
)

// DefaultSize is the LinkedIn standard square.
const DefaultSize = 1080

// Footer calls to action. The last slide swaps to FinalCTA.
const (
	SwipeCTA = "Swipe →"
	FinalCTA = "Link in bio"
)

// Options configures a Renderer.
type Options struct {
	// Size is the canvas edge in pixels. Zero means DefaultSize.
	Size int
	// FontDir holds TTF files named like "Inter-Bold.ttf". Empty uses the
	// embedded Go fonts for every family.
	FontDir string
	// Families preloads these families from FontDir. Defaults to
	// models.FontFamilies.
	Families []string
	// Format selects the encoding used by Encode.
	Format models.ExportFormat
	// JPEGQuality is 1..100; zero uses the imaging default.
	JPEGQuality int
	Logger      *slog.Logger
}

// Renderer draws slides. It holds only read-only state after New and is
// safe for concurrent use.
type Renderer struct {
	size    int
	scale   float64
	book    *FontBook
	format  models.ExportFormat
	quality int
	logger  *slog.Logger
}

// New builds a Renderer and loads its fonts once.
func New(opts Options) (*Renderer, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Families == nil {
		opts.Families = models.FontFamilies
	}
	if opts.Format == "" {
		opts.Format = models.FormatPNG
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	book, err := NewFontBook(opts.FontDir, opts.Families...)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	opts.Logger.Info("renderer ready",
		"size", opts.Size,
		"format", opts.Format,
		"font_families", book.Families(),
	)

	return &Renderer{
		size:    opts.Size,
		scale:   float64(opts.Size) / refSize,
		book:    book,
		format:  opts.Format,
		quality: opts.JPEGQuality,
		logger:  opts.Logger,
	}, nil
}

// Size returns the canvas edge in pixels.
func (r *Renderer) Size() int { return r.size }

// Format returns the export format used by Encode.
func (r *Renderer) Format() models.ExportFormat { return r.format }

// Fonts exposes the font book.
func (r *Renderer) Fonts() *FontBook { return r.book }

// FooterInfo is the text placed in the footer band.
type FooterInfo struct {
	Handle string
	CTA    string
}

// Composition is a rendered slide plus the text groupings that were laid
// out on it, so callers and tests can check what went where without
// reading pixels.
type Composition struct {
	Image  *image.RGBA
	Index  int
	Layout models.Layout

	// Header is the brand text drawn in place of a logo. It is empty when
	// a logo image was drawn.
	Header string
	Logo   bool
	Page   string

	SubtitleText string
	TitleLines   []string
	// Paragraph holds the wrapped lines of a paragraph or quote body.
	Paragraph []string
	// Bullets holds the wrapped lines of each bullet, in order.
	Bullets [][]string
	Stats   []models.Stat
	QRCode  bool

	Footer FooterInfo

	// Substitutions lists every *AssetResolutionError recovered from.
	Substitutions []error
}

// palette is the resolved color set for one carousel.
type palette struct {
	primary   color.RGBA
	secondary color.RGBA
	bg        color.RGBA
	text      color.RGBA
	muted     color.RGBA
	onAccent  color.RGBA
}

// Theme is a style with its assets decoded and scaled for this renderer.
// Prepare it once per carousel and share it across slides; it is never
// modified after Prepare returns.
type Theme struct {
	style         models.StyleConfig
	pal           palette
	logo          image.Image
	background    image.Image
	qr            image.Image
	substitutions []error
}

// Style returns the normalized style the theme was built from.
func (t *Theme) Style() models.StyleConfig { return t.style }

// Substitutions returns the asset fallbacks taken while preparing.
func (t *Theme) Substitutions() []error { return append([]error(nil), t.substitutions...) }

// Prepare resolves colors and loads the optional logo, background and QR
// code. Missing or unreadable assets are recorded as
// *AssetResolutionError and replaced by fallbacks.
func (r *Renderer) Prepare(style models.StyleConfig) *Theme {
	def := models.DefaultStyle()
	if norm, err := style.Normalized(); err == nil {
		style = norm
	} else {
		r.logger.Warn("style has invalid colors, using defaults where needed", "error", err)
	}

	th := &Theme{style: style}
	th.pal = palette{
		primary:   models.MustColor(style.PrimaryColor, models.MustColor(def.PrimaryColor, color.RGBA{A: 255})),
		secondary: models.MustColor(style.SecondaryColor, models.MustColor(def.SecondaryColor, color.RGBA{A: 255})),
		bg:        models.MustColor(style.BackgroundColor, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		text:      models.MustColor(style.TextColor, color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 255}),
		onAccent:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	th.pal.muted = mix(th.pal.text, th.pal.bg, 0.45)

	if style.LogoPath != "" {
		img, err := imaging.Load(style.LogoPath)
		if err != nil {
			th.substitutions = append(th.substitutions, &AssetResolutionError{Kind: AssetLogo, Path: style.LogoPath, Err: err})
		} else {
			th.logo = imaging.FitHeight(img, r.px(logoHeight), r.px(logoMaxWidth))
		}
	}

	if style.BackgroundMode == models.BackgroundImage {
		if style.BackgroundPath == "" {
			th.substitutions = append(th.substitutions, &AssetResolutionError{Kind: AssetBackground, Err: fmt.Errorf("no background image configured")})
		} else if img, err := imaging.Load(style.BackgroundPath); err != nil {
			th.substitutions = append(th.substitutions, &AssetResolutionError{Kind: AssetBackground, Path: style.BackgroundPath, Err: err})
		} else {
			th.background = imaging.Cover(img, r.size, r.size)
		}
	}

	if style.LinkURL != "" {
		q, err := qrcode.New(style.LinkURL, qrcode.Medium)
		if err != nil {
			th.substitutions = append(th.substitutions, &AssetResolutionError{Kind: AssetQRCode, Path: style.LinkURL, Err: err})
		} else {
			q.DisableBorder = true
			q.ForegroundColor = th.pal.text
			q.BackgroundColor = color.White
			th.qr = q.Image(r.px(qrSize))
		}
	}

	for _, s := range th.substitutions {
		r.logger.Warn("asset substituted", "error", s)
	}
	return th
}

// Render draws one slide. It prepares the style's assets on every call;
// use Prepare and RenderTheme to share them across a carousel.
func (r *Renderer) Render(slide models.Slide, page models.PageInfo, style models.StyleConfig) (*Composition, error) {
	return r.RenderTheme(slide, page, r.Prepare(style))
}

// RenderTheme draws one slide with a prepared theme. Drawing runs in the
// background, header, content, footer and progress order, and nothing is
// moved once placed. Any failure, including a panic in the drawing code,
// is returned as *SlideRenderError.
func (r *Renderer) RenderTheme(slide models.Slide, page models.PageInfo, th *Theme) (comp *Composition, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			comp = nil
			err = &SlideRenderError{Index: slide.Index, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if th == nil {
		return nil, &SlideRenderError{Index: slide.Index, Err: fmt.Errorf("nil theme")}
	}

	img := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	c := &canvas{
		dc:     gg.NewContextForRGBA(img),
		img:    img,
		scale:  r.scale,
		book:   r.book,
		family: th.style.FontFamily,
		faces:  make(map[FaceKey]font.Face),
	}
	comp = &Composition{
		Image:         img,
		Index:         slide.Index,
		Layout:        slide.Layout,
		Page:          page.String(),
		Substitutions: th.Substitutions(),
	}

	drawBackground(c, th)
	drawHeader(c, th, page, comp)
	drawContent(c, th, slide, comp)
	drawFooter(c, th, page, comp)
	if th.style.ShowProgress {
		drawProgress(c, th, page)
	}
	return comp, nil
}

// Encode writes the composition in the renderer's export format.
func (r *Renderer) Encode(w io.Writer, comp *Composition) error {
	if comp == nil || comp.Image == nil {
		return fmt.Errorf("encode: empty composition")
	}
	return imaging.Encode(w, comp.Image, string(r.format), r.quality)
}

// px converts reference units to whole pixels.
func (r *Renderer) px(v float64) int {
	return int(v*r.scale + 0.5)
}

// mix blends a toward b by t in [0,1].
func mix(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t + 0.5) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 255}
}

// withAlpha returns c at the given opacity.
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}
