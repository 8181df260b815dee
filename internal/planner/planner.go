// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package planner turns source text into an ordered, normalized sequence
// of slides. It first asks the configured language-model variants in
// order and falls back to deterministic keyword extraction when none of
// them produce a usable slide array.
package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"carouselpress/internal/models"
	"carouselpress/internal/strategy"
	"carouselpress/internal/textnorm"
)

const (
	// DefaultSlideCount is the carousel length requested from models.
	DefaultSlideCount = 5
	// MinSlideCount is the shortest carousel a caller may request.
	MinSlideCount = 5
	// DefaultMaxInputRunes truncates long transcripts before prompting.
	DefaultMaxInputRunes = 15000
)

// Source values reported in Result.
const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
	SourceCache     = "cache"
)

// Generator is one model variant. ai.Variant satisfies it.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CachedPlan is what a PlanCache stores.
type CachedPlan struct {
	Slides []models.Slide `json:"slides"`
	Model  string         `json:"model"`
}

// PlanCache stores model-path plans. Implementations must treat errors as
// misses.
type PlanCache interface {
	GetPlan(ctx context.Context, key string) (*CachedPlan, bool)
	SetPlan(ctx context.Context, key string, plan *CachedPlan)
}

// Result is the outcome of Plan.
type Result struct {
	Slides []models.Slide
	// Source is SourceModel, SourceHeuristic or SourceCache.
	Source string
	// Model names the variant that produced the slides, if any.
	Model string
	// Warning is a *ContentGenerationError when the model path was tried
	// and failed. The slides are still usable.
	Warning error
}

// Planner plans carousels. It is safe for concurrent use once built.
type Planner struct {
	generators []Generator
	cache      PlanCache
	slideCount int
	maxInput   int
	logger     *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithGenerators sets the ordered model variants to try.
func WithGenerators(gens ...Generator) Option {
	return func(p *Planner) { p.generators = append(p.generators, gens...) }
}

// WithCache enables plan caching for the model path.
func WithCache(c PlanCache) Option {
	return func(p *Planner) { p.cache = c }
}

// WithSlideCount sets how many slides models are asked for, clamped to
// [MinSlideCount, MaxSlides].
func WithSlideCount(n int) Option {
	return func(p *Planner) { p.slideCount = clampSlideCount(n) }
}

// WithMaxInput sets the rune limit for text sent to models.
func WithMaxInput(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxInput = n
		}
	}
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New builds a Planner. With no generators it always uses the heuristic.
func New(opts ...Option) *Planner {
	p := &Planner{
		slideCount: DefaultSlideCount,
		maxInput:   DefaultMaxInputRunes,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// HasModel reports whether at least one model variant is configured.
func (p *Planner) HasModel() bool { return len(p.generators) > 0 }

// SlideCount returns the configured model slide count.
func (p *Planner) SlideCount() int { return p.slideCount }

// Plan produces slides for text. It returns *EmptyContentError when text
// is blank. Otherwise it always returns slides: from the model path when
// a variant succeeds, else from the heuristic with Result.Warning set if
// models were tried.
func (p *Planner) Plan(ctx context.Context, text string, archetype models.Archetype, seed int) (Result, error) {
	if textnorm.LooksLikeMarkdown(text) {
		text = textnorm.FromMarkdown(text)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, &EmptyContentError{Reason: "input is empty"}
	}
	if textnorm.IsBlank(text) {
		return Result{}, &EmptyContentError{Reason: "input holds only annotations"}
	}
	if !archetype.Valid() {
		archetype = models.ArchetypeSuccessStory
	}

	if !p.HasModel() {
		return Result{Slides: HeuristicSlides(text, archetype), Source: SourceHeuristic}, nil
	}

	key := p.cacheKey(text, archetype, seed)
	if p.cache != nil {
		if cached, ok := p.cache.GetPlan(ctx, key); ok && len(cached.Slides) > 0 {
			p.logger.Debug("plan cache hit", "key", key[:12])
			return Result{
				Slides: NormalizeSlides(cached.Slides, archetype, seed),
				Source: SourceCache,
				Model:  cached.Model,
			}, nil
		}
	}

	slides, model, err := p.planWithModels(ctx, text, archetype, seed)
	if err == nil {
		if p.cache != nil {
			p.cache.SetPlan(ctx, key, &CachedPlan{Slides: slides, Model: model})
		}
		return Result{Slides: slides, Source: SourceModel, Model: model}, nil
	}

	genErr := &ContentGenerationError{}
	var ex *strategy.ExhaustedError
	if errors.As(err, &ex) {
		genErr.Attempts = ex.Failures
	} else {
		genErr.Attempts = []strategy.Failure{{Name: "model", Err: err}}
	}
	p.logger.Warn("model planning failed, using keyword extraction",
		"archetype", archetype,
		"attempts", len(genErr.Attempts),
		"error", err,
	)

	return Result{
		Slides:  HeuristicSlides(text, archetype),
		Source:  SourceHeuristic,
		Warning: genErr,
	}, nil
}

// planWithModels tries each generator in order. A variant fails when its
// call errors or its response does not parse into a slide array.
func (p *Planner) planWithModels(ctx context.Context, text string, archetype models.Archetype, seed int) ([]models.Slide, string, error) {
	input := truncateRunes(textnorm.Normalize(text), p.maxInput)
	userPrompt := buildUserPrompt(archetype, input, p.slideCount)

	attempts := make([]strategy.Strategy[[]models.Slide], len(p.generators))
	for i, g := range p.generators {
		attempts[i] = strategy.Func[[]models.Slide]{
			Label: g.Name(),
			Fn: func(ctx context.Context) ([]models.Slide, error) {
				start := time.Now()
				raw, err := g.Generate(ctx, systemPrompt, userPrompt)
				if err != nil {
					return nil, fmt.Errorf("generate: %w", err)
				}
				slides, err := ParseSlides(raw)
				if err != nil {
					return nil, err
				}
				p.logger.Info("model planned slides",
					"model", g.Name(),
					"slides", len(slides),
					"duration", time.Since(start).String(),
				)
				return NormalizeSlides(slides, archetype, seed), nil
			},
		}
	}

	return strategy.First(ctx, attempts)
}

func (p *Planner) cacheKey(text string, archetype models.Archetype, seed int) string {
	names := make([]string, len(p.generators))
	for i, g := range p.generators {
		names[i] = g.Name()
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%s|", archetype, seed, p.slideCount, strings.Join(names, ","))
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func clampSlideCount(n int) int {
	switch {
	case n < MinSlideCount:
		return MinSlideCount
	case n > MaxSlides:
		return MaxSlides
	}
	return n
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
