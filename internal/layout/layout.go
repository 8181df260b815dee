// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout assigns a visual layout to each slide position. Selection
// is a pure function of (index, total, archetype, seed).
package layout

import (
	"math/rand/v2"

	"carouselpress/internal/models"
)

// pcgStream is the fixed PCG increment; only the seed varies per call.
const pcgStream = 0x9e3779b97f4a7c15

// baseCandidates are the interior layouts every archetype can draw from.
var baseCandidates = []models.Layout{
	models.LayoutQuote,
	models.LayoutList,
	models.LayoutData,
	models.LayoutSplit,
}

// favored lists extra copies appended to the base set per archetype. A tag
// listed twice is three times as likely as an unfavored one.
var favored = map[models.Archetype][]models.Layout{
	models.ArchetypeSuccessStory: {models.LayoutQuote, models.LayoutSplit},
	models.ArchetypeTutorial:     {models.LayoutList, models.LayoutList, models.LayoutSplit},
	models.ArchetypeTips:         {models.LayoutList, models.LayoutQuote},
	models.ArchetypeDataInsight:  {models.LayoutData, models.LayoutData, models.LayoutSplit},
}

// Candidates returns the weighted interior candidate list for an archetype.
func Candidates(a models.Archetype) []models.Layout {
	out := make([]models.Layout, 0, len(baseCandidates)+len(favored[a]))
	out = append(out, baseCandidates...)
	return append(out, favored[a]...)
}

// Select returns the layout for position index of total. Position 0 is
// always cover and the last position is always cta. Interior positions
// never repeat the layout chosen for the previous position.
func Select(index, total int, archetype models.Archetype, seed int) models.Layout {
	if index <= 0 {
		return models.LayoutCover
	}
	if index >= total-1 {
		return models.LayoutCTA
	}

	prev := models.LayoutCover
	var cur models.Layout
	for i := 1; i <= index; i++ {
		cur = draw(i, archetype, seed, prev)
		prev = cur
	}
	return cur
}

// draw picks an interior layout for position i with a generator seeded
// from seed+i, excluding prev.
func draw(i int, archetype models.Archetype, seed int, prev models.Layout) models.Layout {
	pool := Candidates(archetype)
	filtered := pool[:0:0]
	for _, l := range pool {
		if l != prev {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) > 0 {
		pool = filtered
	}

	r := rand.New(rand.NewPCG(uint64(int64(seed)+int64(i)), pcgStream))
	return pool[r.IntN(len(pool))]
}

// Sequence returns the layouts for every position of a carousel.
func Sequence(total int, archetype models.Archetype, seed int) []models.Layout {
	if total <= 0 {
		return nil
	}
	out := make([]models.Layout, total)
	for i := range out {
		out[i] = Select(i, total, archetype, seed)
	}
	return out
}

// Assign fills in the layout of every slide whose tag is unset or not one
// of the known layouts, using the slide's position. Valid tags are kept.
func Assign(slides []models.Slide, archetype models.Archetype, seed int) {
	for i := range slides {
		if !slides[i].Layout.Valid() {
			slides[i].Layout = Select(i, len(slides), archetype, seed)
		}
	}
}
