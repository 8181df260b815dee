// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assembler runs one carousel request end to end: plan the
// slides, render each one in index order, store the artifacts and the zip
// bundle, and record the run. A slide that fails to render is reported as
// a warning and the rest of the carousel is still produced.
package assembler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carouselpress/internal/artifact"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
	"carouselpress/internal/render"
	"carouselpress/internal/renderer"
)

// ErrNothingRendered is returned when not a single slide produced an image.
var ErrNothingRendered = errors.New("no slides were rendered")

// ErrNoHTMLRenderer is returned for the HTML target when the assembler was
// built without an HTML renderer.
var ErrNoHTMLRenderer = errors.New("html rendering is not configured")

// Target selects the rendering back end.
type Target string

const (
	// TargetRaster draws slides in-process.
	TargetRaster Target = "raster"
	// TargetHTML builds the carousel document and captures each slide
	// through a render.Capturer.
	TargetHTML Target = "html"
)

// ParseTarget maps user input to a Target, defaulting to raster.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case "", TargetRaster:
		return TargetRaster, nil
	case TargetHTML:
		return TargetHTML, nil
	}
	return "", fmt.Errorf("unknown render target %q", s)
}

// SourceReviewed marks a run rendered from user-edited slides.
const SourceReviewed = "reviewed"

// DocumentName is the file name of the HTML document artifact.
const DocumentName = "carousel.html"

// RunRecorder persists run history. store.RunStore implements it.
type RunRecorder interface {
	Record(ctx context.Context, run *models.Run) error
}

// Request is one carousel to build. When Slides is set the planner is
// skipped and those slides are rendered as reviewed.
type Request struct {
	ID        uuid.UUID
	Text      string
	Archetype models.Archetype
	Style     models.StyleConfig
	Seed      int
	Target    Target
	Slides    []models.Slide
	// Source and Model describe how reviewed slides were planned.
	Source string
	Model  string
}

// Artifact is one stored slide image.
type Artifact struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Ref         string `json:"ref"`
	ContentType string `json:"content_type"`
}

// Result is the outcome of Assemble. Warnings holds every recovered
// problem: a *planner.ContentGenerationError, *renderer.AssetResolutionError
// and *renderer.SlideRenderError values.
type Result struct {
	ID        uuid.UUID      `json:"id"`
	Slides    []models.Slide `json:"slides"`
	Artifacts []Artifact     `json:"artifacts"`
	Archive   string         `json:"archive,omitempty"`
	Document  string         `json:"document,omitempty"`
	Source    string         `json:"source"`
	Model     string         `json:"model,omitempty"`
	Warnings  []error        `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	Target    Target         `json:"target"`
}

// WarningMessages flattens Warnings for display and storage.
func (r *Result) WarningMessages() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.Error())
	}
	return out
}

// Assembler wires the planner, renderers and storage together. It holds
// no per-request state and is safe for concurrent use.
type Assembler struct {
	planner  *planner.Planner
	renderer *renderer.Renderer
	html     *render.Renderer
	capturer render.Capturer
	sink     artifact.Sink
	runs     RunRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithHTML enables the HTML target. capturer may be nil, in which case the
// document is stored without slide images.
func WithHTML(html *render.Renderer, capturer render.Capturer) Option {
	return func(a *Assembler) {
		a.html = html
		a.capturer = capturer
	}
}

// WithRuns records each finished run.
func WithRuns(r RunRecorder) Option {
	return func(a *Assembler) { a.runs = r }
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// New builds an Assembler.
func New(p *planner.Planner, r *renderer.Renderer, sink artifact.Sink, opts ...Option) *Assembler {
	a := &Assembler{
		planner:  p,
		renderer: r,
		sink:     sink,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Plan runs only the planning step.
func (a *Assembler) Plan(ctx context.Context, text string, archetype models.Archetype, seed int) (planner.Result, error) {
	return a.planner.Plan(ctx, text, archetype, seed)
}

// Assemble plans (unless req.Slides is set), renders and stores one
// carousel. It fails outright only on empty input, cancellation, storage
// errors, or when no slide could be rendered; in the last case the
// returned Result still carries the collected warnings.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Target == "" {
		req.Target = TargetRaster
	}
	if !req.Archetype.Valid() {
		req.Archetype = models.ArchetypeSuccessStory
	}

	res := &Result{ID: req.ID, CreatedAt: a.now().UTC(), Target: req.Target}
	log := a.logger.With("run_id", req.ID, "target", req.Target)

	if len(req.Slides) > 0 {
		res.Slides = planner.NormalizeSlides(req.Slides, req.Archetype, req.Seed)
		res.Source = req.Source
		if res.Source == "" {
			res.Source = SourceReviewed
		}
		res.Model = req.Model
	} else {
		plan, err := a.planner.Plan(ctx, req.Text, req.Archetype, req.Seed)
		if err != nil {
			return nil, err
		}
		res.Slides, res.Source, res.Model = plan.Slides, plan.Source, plan.Model
		if plan.Warning != nil {
			res.Warnings = append(res.Warnings, plan.Warning)
		}
	}

	var files []artifact.File
	var err error
	switch req.Target {
	case TargetHTML:
		files, err = a.renderHTML(ctx, req, res, log)
	default:
		files, err = a.renderRaster(ctx, req, res, log)
	}
	if err != nil {
		return nil, err
	}

	documentOnly := req.Target == TargetHTML && a.capturer == nil
	if len(files) == 0 && !documentOnly {
		log.Error("no slides rendered", "slides", len(res.Slides), "warnings", len(res.Warnings))
		return res, ErrNothingRendered
	}

	if len(files) > 0 {
		data, err := artifact.Zip(files, res.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("build archive: %w", err)
		}
		ref, err := a.sink.Put(ctx, a.key(res.ID, artifact.ArchiveName), "application/zip", data)
		if err != nil {
			return nil, fmt.Errorf("store archive: %w", err)
		}
		res.Archive = ref
	}

	a.record(ctx, req, res, log)
	log.Info("carousel assembled",
		"source", res.Source,
		"model", res.Model,
		"slides", len(res.Slides),
		"rendered", len(res.Artifacts),
		"warnings", len(res.Warnings),
	)
	return res, nil
}

// renderRaster draws every slide in index order and stores each image.
func (a *Assembler) renderRaster(ctx context.Context, req Request, res *Result, log *slog.Logger) ([]artifact.File, error) {
	th := a.renderer.Prepare(req.Style)
	for _, s := range th.Substitutions() {
		res.Warnings = append(res.Warnings, s)
	}

	format := a.renderer.Format()
	total := len(res.Slides)
	var files []artifact.File
	for i, slide := range res.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		comp, err := a.renderer.RenderTheme(slide, models.PageInfo{Page: i + 1, Total: total}, th)
		if err != nil {
			res.Warnings = append(res.Warnings, err)
			log.Warn("slide render failed", "index", i, "error", err)
			continue
		}
		var buf bytes.Buffer
		if err := a.renderer.Encode(&buf, comp); err != nil {
			err = &renderer.SlideRenderError{Index: i, Err: err}
			res.Warnings = append(res.Warnings, err)
			log.Warn("slide encode failed", "index", i, "error", err)
			continue
		}

		name := fmt.Sprintf("%s.%s", slide.Name(), format.Ext())
		if err := a.store(ctx, res, i, name, format.ContentType(), buf.Bytes()); err != nil {
			return nil, err
		}
		files = append(files, artifact.File{Name: name, ContentType: format.ContentType(), Data: buf.Bytes()})
	}
	return files, nil
}

// renderHTML stores the carousel document and, with a capturer, one
// screenshot per slide anchor.
func (a *Assembler) renderHTML(ctx context.Context, req Request, res *Result, log *slog.Logger) ([]artifact.File, error) {
	if a.html == nil {
		return nil, ErrNoHTMLRenderer
	}
	doc, err := a.html.Document(res.Slides, req.Style)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	ref, err := a.sink.Put(ctx, a.key(res.ID, DocumentName), render.ContentType, doc)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	res.Document = ref

	if a.capturer == nil {
		log.Info("no capturer configured, stored document only")
		return nil, nil
	}

	anchors := render.Anchors(len(res.Slides))
	shots, err := a.capturer.Capture(ctx, doc, anchors)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for i := range res.Slides {
			res.Warnings = append(res.Warnings, &renderer.SlideRenderError{Index: i, Err: fmt.Errorf("capture: %w", err)})
		}
		return nil, nil
	}

	var files []artifact.File
	for i, slide := range res.Slides {
		data, ok := shots[anchors[i]]
		if !ok || len(data) == 0 {
			res.Warnings = append(res.Warnings, &renderer.SlideRenderError{Index: i, Err: fmt.Errorf("no capture for #%s", anchors[i])})
			continue
		}
		name := slide.Name() + ".png"
		if err := a.store(ctx, res, i, name, "image/png", data); err != nil {
			return nil, err
		}
		files = append(files, artifact.File{Name: name, ContentType: "image/png", Data: data})
	}
	return files, nil
}

func (a *Assembler) store(ctx context.Context, res *Result, index int, name, contentType string, data []byte) error {
	ref, err := a.sink.Put(ctx, a.key(res.ID, name), contentType, data)
	if err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	res.Artifacts = append(res.Artifacts, Artifact{Index: index, Name: name, Ref: ref, ContentType: contentType})
	return nil
}

func (a *Assembler) key(id uuid.UUID, name string) string {
	return id.String() + "/" + name
}

// record writes run history. Failures are logged and do not fail the run.
func (a *Assembler) record(ctx context.Context, req Request, res *Result, log *slog.Logger) {
	if a.runs == nil {
		return
	}
	run := &models.Run{
		ID:            res.ID,
		Archetype:     req.Archetype,
		Source:        res.Source,
		Model:         res.Model,
		Target:        string(res.Target),
		SlideCount:    len(res.Slides),
		RenderedCount: len(res.Artifacts),
		Warnings:      res.WarningMessages(),
		ArchiveKey:    res.Archive,
		CreatedAt:     res.CreatedAt,
	}
	if err := a.runs.Record(ctx, run); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}
