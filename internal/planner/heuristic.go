// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"carouselpress/internal/models"
	"carouselpress/internal/textnorm"
)

const (
	// HookLabel is the subtitle of every heuristic cover slide.
	HookLabel = "Must Read"

	// PlaceholderText fills a section for which no sentence was found.
	PlaceholderText = "More details coming soon."

	// HeuristicSlideCount is the fixed length of a heuristic carousel.
	HeuristicSlideCount = 5

	maxPerSection    = 3
	bulletMaxRunes   = 160
	hookBodyMaxRunes = 140
	maxHeuristicStat = 3
)

// Sections is the output of keyword extraction, kept separate from slide
// construction so it can be inspected.
type Sections struct {
	Hook      string
	Challenge []string
	Solution  []string
	Result    []string
}

// Get returns the sentences assigned to sec.
func (s Sections) Get(sec Section) []string {
	switch sec {
	case SectionChallenge:
		return s.Challenge
	case SectionSolution:
		return s.Solution
	default:
		return s.Result
	}
}

func (s *Sections) set(sec Section, v []string) {
	switch sec {
	case SectionChallenge:
		s.Challenge = v
	case SectionSolution:
		s.Solution = v
	default:
		s.Result = v
	}
}

// ExtractSections scores sentences against the archetype's keyword sets
// and assigns the best ones to each section. A sentence belongs to at most
// one section, the first that claims it. Sections without an unclaimed
// keyword hit take positional slices of the sentences nobody claimed. The
// result is deterministic for a given text and archetype.
func ExtractSections(text string, archetype models.Archetype) Sections {
	sentences := textnorm.Prepare(text)
	if len(sentences) == 0 {
		return Sections{}
	}

	tbl := tableFor(archetype)
	lower := make([]string, len(sentences))
	for i, s := range sentences {
		lower[i] = strings.ToLower(s)
	}

	out := Sections{Hook: sentences[0]}
	claimed := make(map[int]bool)
	var empty []Section

	for _, sec := range sections {
		type scored struct{ idx, score int }
		var cands []scored
		for i, l := range lower {
			if claimed[i] {
				continue
			}
			if n := keywordScore(l, tbl.keywords[sec]); n > 0 {
				cands = append(cands, scored{i, n})
			}
		}
		if len(cands) == 0 {
			empty = append(empty, sec)
			continue
		}
		sort.SliceStable(cands, func(a, b int) bool { return cands[a].score > cands[b].score })

		var idxs []int
		seen := make(map[string]bool)
		for _, c := range cands {
			if seen[lower[c.idx]] {
				continue
			}
			seen[lower[c.idx]] = true
			idxs = append(idxs, c.idx)
			if len(idxs) == maxPerSection {
				break
			}
		}
		sort.Ints(idxs)

		picked := make([]string, len(idxs))
		for i, idx := range idxs {
			picked[i] = sentences[idx]
			claimed[idx] = true
		}
		out.set(sec, picked)
	}

	if len(empty) > 0 {
		var rest []string
		for i, s := range sentences {
			if i == 0 || claimed[i] {
				continue
			}
			rest = append(rest, s)
		}
		rest = dedupe(rest)
		for _, sec := range empty {
			out.set(sec, positionalSlice(rest, sec))
		}
	}
	return out
}

// keywordScore counts how many keywords occur in the lowercased sentence.
func keywordScore(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// positionalSlice splits rest into one chunk per section and returns the
// chunk for sec, capped at maxPerSection.
func positionalSlice(rest []string, sec Section) []string {
	if len(rest) == 0 {
		return nil
	}
	chunk := (len(rest) + len(sections) - 1) / len(sections)
	start := int(sec) * chunk
	if start >= len(rest) {
		return nil
	}
	end := min(start+chunk, len(rest), start+maxPerSection)
	return rest[start:end]
}

// dedupe removes repeated sentences, keeping the first occurrence.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// HeuristicSlides builds the fixed five-slide carousel from keyword
// extraction: hook, challenge, solution, result, cta.
func HeuristicSlides(text string, archetype models.Archetype) []models.Slide {
	secs := ExtractSections(text, archetype)
	tbl := tableFor(archetype)

	hookBody := PlaceholderText
	if secs.Hook != "" {
		hookBody = textnorm.Truncate(secs.Hook, hookBodyMaxRunes)
	}

	slides := make([]models.Slide, 0, HeuristicSlideCount)
	slides = append(slides, models.Slide{
		Subtitle: HookLabel,
		Title:    tbl.hookTitle,
		Body:     models.TextBody(hookBody),
		Layout:   models.LayoutCover,
	})

	sectionLayouts := map[Section]models.Layout{
		SectionChallenge: models.LayoutList,
		SectionSolution:  models.LayoutSplit,
		SectionResult:    models.LayoutList,
	}
	for _, sec := range sections {
		c := tbl.copy[sec]
		s := models.Slide{
			Subtitle: c.subtitle,
			Title:    c.title,
			Body:     sectionBody(secs.Get(sec)),
			Layout:   sectionLayouts[sec],
		}
		if sec == SectionResult {
			// Only numbers from the result sentences count as outcomes.
			if stats := ExtractStats(secs.Result); len(stats) > 0 {
				s.Stats = stats
				s.Layout = models.LayoutData
			}
		}
		slides = append(slides, s)
	}

	slides = append(slides, models.Slide{
		Subtitle: tbl.cta.subtitle,
		Title:    tbl.cta.title,
		Body:     models.TextBody(tbl.ctaBody),
		Layout:   models.LayoutCTA,
	})

	return NormalizeSlides(slides, archetype, 0)
}

func sectionBody(sentences []string) models.Body {
	if len(sentences) == 0 {
		return models.TextBody(PlaceholderText)
	}
	items := make([]string, len(sentences))
	for i, s := range sentences {
		items[i] = textnorm.Truncate(s, bulletMaxRunes)
	}
	return models.BulletBody(items...)
}

var reStat = regexp.MustCompile(`(?i)(?:[$€£]\s?)?\d+(?:[.,]\d+)?\s?(?:%|x\b|k\b|m\b|bn\b|million\b|billion\b|percent\b|times\b)`)

// statSuffixes canonicalises long unit words in stat values.
var statSuffixes = strings.NewReplacer(
	"percent", "%",
	"times", "x",
	"million", "M",
	"billion", "B",
)

var labelStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "of": true, "to": true,
	"and": true, "or": true, "our": true, "their": true, "its": true, "for": true,
	"on": true, "by": true, "with": true, "more": true, "less": true,
}

// ExtractStats pulls numeric highlights ("45%", "2x", "$1.2M") out of the
// sentences, labelled with the words that follow each number.
func ExtractStats(sentences []string) []models.Stat {
	var out []models.Stat
	seen := make(map[string]bool)
	for _, s := range sentences {
		for _, loc := range reStat.FindAllStringIndex(s, -1) {
			value := canonicalStat(s[loc[0]:loc[1]])
			if seen[value] {
				continue
			}
			seen[value] = true
			out = append(out, models.Stat{Value: value, Label: statLabel(s[loc[1]:])})
			if len(out) == maxHeuristicStat {
				return out
			}
		}
	}
	return out
}

func canonicalStat(raw string) string {
	v := statSuffixes.Replace(strings.ToLower(strings.ReplaceAll(raw, " ", "")))
	if strings.HasSuffix(v, "x") || strings.HasSuffix(v, "%") {
		return v
	}
	return strings.ToUpper(v)
}

// statLabel builds a short title-cased label from the words after a
// number, stopping at the end of the clause.
func statLabel(after string) string {
	var words []string
	for _, f := range strings.Fields(after) {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if w == "" || strings.IndexFunc(w, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			break
		}
		stop := labelStopwords[strings.ToLower(w)]
		if len(words) == 0 && stop {
			continue
		}
		if stop {
			words = append(words, strings.ToLower(w))
		} else {
			words = append(words, titleWord(w))
		}
		if len(words) == 3 || strings.TrimRightFunc(f, unicode.IsPunct) != f {
			break
		}
	}
	for len(words) > 0 && labelStopwords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return "Improvement"
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
