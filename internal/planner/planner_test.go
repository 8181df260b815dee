// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"carouselpress/internal/models"
)

// scriptedGenerator returns a fixed response or error and counts calls.
type scriptedGenerator struct {
	name  string
	resp  string
	err   error
	calls *[]string
}

func (g scriptedGenerator) Name() string { return g.name }

func (g scriptedGenerator) Generate(_ context.Context, system, user string) (string, error) {
	*g.calls = append(*g.calls, g.name)
	if system == "" || !strings.Contains(user, "Source text:") {
		return "", errors.New("prompt not built")
	}
	return g.resp, g.err
}

// memCache is an in-memory PlanCache.
type memCache struct {
	mu    sync.Mutex
	plans map[string]*CachedPlan
}

func (m *memCache) GetPlan(_ context.Context, key string) (*CachedPlan, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[key]
	return p, ok
}

func (m *memCache) SetPlan(_ context.Context, key string, p *CachedPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plans == nil {
		m.plans = map[string]*CachedPlan{}
	}
	m.plans[key] = p
}

const modelJSON = "Here is your carousel:\n```json\n" + `[
  {"title": "We Cut Costs", "subtitle": "Hook", "body": "A short story.", "layout": "layout-cover"},
  {"title": "The Pain", "subtitle": "Challenge", "body": "Everything was manual.", "layout": "layout-list"},
  {"title": "Results", "subtitle": "Impact", "body": "ignored", "stats": [{"value": "45%", "label": "Growth"}, {"value": 2, "label": "Offices"}], "layout": "layout-data"},
  {"title": "How", "subtitle": "Solution", "body": ["Automated invoicing", "Live dashboards"]},
  {"title": "Talk to Us", "subtitle": "CTA", "body": "Link below."}
]` + "\n```\nHope this helps!"

func TestPlanEmptyText(t *testing.T) {
	for _, in := range []string{"", "   \n\t", "[Music] [Applause]"} {
		res, err := New().Plan(context.Background(), in, models.ArchetypeSuccessStory, 1)
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Plan(%q) err = %v, want ErrEmptyContent", in, err)
		}
		var ece *EmptyContentError
		if !errors.As(err, &ece) {
			t.Errorf("Plan(%q) err is not *EmptyContentError", in)
		}
		if len(res.Slides) != 0 {
			t.Errorf("Plan(%q) returned %d slides", in, len(res.Slides))
		}
	}
}

func TestPlanEmptyTextSkipsModel(t *testing.T) {
	var calls []string
	p := New(WithGenerators(scriptedGenerator{name: "m", resp: modelJSON, calls: &calls}))
	if _, err := p.Plan(context.Background(), "", models.ArchetypeTips, 0); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("model called for empty input: %v", calls)
	}
}

func TestPlanHeuristicProperties(t *testing.T) {
	inputs := []string{
		"x",
		"One short line",
		"We had a problem with slow manual invoicing that frustrated everyone. We implemented automation across the finance team. The result was a 45% reduction in processing time.",
		strings.Repeat("This is a fairly long sentence about nothing in particular. ", 30),
		"[00:01] so um basically [Music] we grew the company from two people to forty over three years and it was hard",
		"# Heading\n\n- bullet one that is long enough\n- bullet two that is long enough",
	}
	for _, a := range models.Archetypes {
		for _, in := range inputs {
			res, err := New().Plan(context.Background(), in, a, 7)
			if err != nil {
				t.Fatalf("Plan(%q, %s): %v", in, a, err)
			}
			if res.Source != SourceHeuristic || res.Warning != nil {
				t.Errorf("Source = %q, Warning = %v", res.Source, res.Warning)
			}
			if len(res.Slides) != HeuristicSlideCount {
				t.Fatalf("got %d slides, want 5", len(res.Slides))
			}
			if res.Slides[0].Subtitle != HookLabel {
				t.Errorf("slide 0 subtitle = %q, want %q", res.Slides[0].Subtitle, HookLabel)
			}
			for i, s := range res.Slides {
				if s.Title == "" {
					t.Errorf("slide %d has empty title", i)
				}
				if s.Index != i {
					t.Errorf("slide %d has index %d", i, s.Index)
				}
				if !s.Layout.Valid() {
					t.Errorf("slide %d layout %q invalid", i, s.Layout)
				}
			}
			if res.Slides[0].Layout != models.LayoutCover || res.Slides[4].Layout != models.LayoutCTA {
				t.Errorf("ends = %q, %q", res.Slides[0].Layout, res.Slides[4].Layout)
			}
		}
	}
}

func TestPlanHeuristicDeterministic(t *testing.T) {
	text := "Our biggest problem was manual data entry across teams. We deployed a shared platform and automated reports. The result was faster decisions and happier staff."
	a, _ := New().Plan(context.Background(), text, models.ArchetypeSuccessStory, 1)
	b, _ := New().Plan(context.Background(), text, models.ArchetypeSuccessStory, 999)
	for i := range a.Slides {
		if a.Slides[i].Title != b.Slides[i].Title ||
			a.Slides[i].Body.PlainText() != b.Slides[i].Body.PlainText() ||
			a.Slides[i].Layout != b.Slides[i].Layout {
			t.Fatalf("slide %d differs between runs", i)
		}
	}
}

func TestPlanScenarioProblemAndResult(t *testing.T) {
	text := "The team started the year with a serious problem in how orders were handled every single day. " +
		"Staff copied details by hand between three separate systems and mistakes were common. " +
		"They introduced one shared platform for sales and warehouse work. " +
		"The result was a calmer operation where customers finally got accurate delivery dates."

	secs := ExtractSections(text, models.ArchetypeSuccessStory)
	if !anyContains(secs.Challenge, "problem") {
		t.Errorf("challenge = %q, want a sentence with 'problem'", secs.Challenge)
	}
	if !anyContains(secs.Result, "result") {
		t.Errorf("result = %q, want a sentence with 'result'", secs.Result)
	}

	res, err := New().Plan(context.Background(), text, models.ArchetypeSuccessStory, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !anyContains(res.Slides[1].Body.Bullets(), "problem") {
		t.Errorf("challenge slide body = %q", res.Slides[1].Body.Bullets())
	}
	if !anyContains(res.Slides[3].Body.Bullets(), "result") {
		t.Errorf("result slide body = %q", res.Slides[3].Body.Bullets())
	}
}

func anyContains(items []string, word string) bool {
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), word) {
			return true
		}
	}
	return false
}

func TestPlanModelPath(t *testing.T) {
	var calls []string
	p := New(WithGenerators(scriptedGenerator{name: "gemini/gemini-2.5-pro", resp: modelJSON, calls: &calls}))

	res, err := p.Plan(context.Background(), "Some real source text about a project.", models.ArchetypeSuccessStory, 3)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if res.Source != SourceModel || res.Model != "gemini/gemini-2.5-pro" || res.Warning != nil {
		t.Fatalf("Result = %+v", res)
	}
	if len(res.Slides) != 5 {
		t.Fatalf("got %d slides", len(res.Slides))
	}

	pain := res.Slides[1]
	if pain.Body.Kind() != models.BodyBullets || pain.Body.Bullets()[0] != "Everything was manual." {
		t.Errorf("list body not coerced: %+v", pain.Body)
	}

	data := res.Slides[2]
	if !data.Body.IsEmpty() {
		t.Errorf("data slide body should be cleared, got %q", data.Body.PlainText())
	}
	if len(data.Stats) != 2 || data.Stats[1].Value != "2" {
		t.Errorf("stats = %+v", data.Stats)
	}

	if !res.Slides[3].Layout.Valid() {
		t.Errorf("missing layout not assigned: %q", res.Slides[3].Layout)
	}
	if res.Slides[4].Layout != models.LayoutCTA {
		t.Errorf("last slide layout = %q, want cta", res.Slides[4].Layout)
	}
}

func TestPlanModelFallbackOrder(t *testing.T) {
	var calls []string
	p := New(WithGenerators(
		scriptedGenerator{name: "a", err: errors.New("quota"), calls: &calls},
		scriptedGenerator{name: "b", resp: "Sorry, I cannot help with that.", calls: &calls},
		scriptedGenerator{name: "c", resp: modelJSON, calls: &calls},
		scriptedGenerator{name: "d", resp: modelJSON, calls: &calls},
	))

	res, err := p.Plan(context.Background(), "Source text.", models.ArchetypeTips, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Model != "c" {
		t.Errorf("Model = %q, want c", res.Model)
	}
	if strings.Join(calls, ",") != "a,b,c" {
		t.Errorf("calls = %v, want a,b,c", calls)
	}
}

func TestPlanAllModelsFail(t *testing.T) {
	var calls []string
	p := New(WithGenerators(
		scriptedGenerator{name: "a", err: errors.New("timeout"), calls: &calls},
		scriptedGenerator{name: "b", resp: "[]", calls: &calls},
	))

	res, err := p.Plan(context.Background(), "We had a problem. The result was great.", models.ArchetypeSuccessStory, 0)
	if err != nil {
		t.Fatalf("Plan should recover, got %v", err)
	}
	if res.Source != SourceHeuristic || len(res.Slides) != HeuristicSlideCount {
		t.Fatalf("Result = %+v", res)
	}
	var cge *ContentGenerationError
	if !errors.As(res.Warning, &cge) {
		t.Fatalf("Warning = %v, want *ContentGenerationError", res.Warning)
	}
	if len(cge.Attempts) != 2 || cge.Attempts[0].Name != "a" || cge.Attempts[1].Name != "b" {
		t.Errorf("Attempts = %+v", cge.Attempts)
	}
	var pe *ParseError
	if !errors.As(res.Warning, &pe) {
		t.Error("Warning should wrap the parse failure")
	}
}

func TestPlanCache(t *testing.T) {
	var calls []string
	cache := &memCache{}
	p := New(
		WithGenerators(scriptedGenerator{name: "m", resp: modelJSON, calls: &calls}),
		WithCache(cache),
	)

	first, err := p.Plan(context.Background(), "Cached source text.", models.ArchetypeTutorial, 5)
	if err != nil || first.Source != SourceModel {
		t.Fatalf("first = %+v, %v", first, err)
	}
	second, err := p.Plan(context.Background(), "Cached source text.", models.ArchetypeTutorial, 5)
	if err != nil || second.Source != SourceCache {
		t.Fatalf("second = %+v, %v", second, err)
	}
	if len(calls) != 1 {
		t.Errorf("model called %d times, want 1", len(calls))
	}
	if second.Model != "m" || len(second.Slides) != len(first.Slides) {
		t.Errorf("cached result mismatch: %+v", second)
	}

	if _, err := p.Plan(context.Background(), "Cached source text.", models.ArchetypeTutorial, 6); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 {
		t.Error("different seed should miss the cache")
	}
}

func TestPlanInvalidArchetypeDefaults(t *testing.T) {
	res, err := New().Plan(context.Background(), "Some text that is long enough to count.", models.Archetype("poetry"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Slides[1].Subtitle != tables[models.ArchetypeSuccessStory].copy[SectionChallenge].subtitle {
		t.Errorf("unexpected challenge subtitle %q", res.Slides[1].Subtitle)
	}
}

func TestWithSlideCountClamps(t *testing.T) {
	if got := New(WithSlideCount(2)).SlideCount(); got != MinSlideCount {
		t.Errorf("SlideCount = %d", got)
	}
	if got := New(WithSlideCount(20)).SlideCount(); got != MaxSlides {
		t.Errorf("SlideCount = %d", got)
	}
	if got := New(WithSlideCount(6)).SlideCount(); got != 6 {
		t.Errorf("SlideCount = %d", got)
	}
}
