// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"strings"

	"carouselpress/internal/layout"
	"carouselpress/internal/models"
)

// NormalizeSlides is the single point where slide shapes are fixed up
// before rendering. After it runs:
//   - indexes match positions,
//   - every layout is one of the six known tags,
//   - list layouts carry a bullet body,
//   - data slides with stats have an empty body,
//   - non-data slides carry no stats.
//
// It is also applied to slides edited by users during review.
func NormalizeSlides(slides []models.Slide, archetype models.Archetype, seed int) []models.Slide {
	n := len(slides)
	out := make([]models.Slide, n)
	for i, s := range slides {
		s.Index = i
		s.Title = strings.TrimSpace(s.Title)
		s.Subtitle = strings.TrimSpace(s.Subtitle)
		s.Stats = cleanStats(s.Stats)

		if !s.Layout.Valid() {
			if s.HasStats() && i > 0 && i < n-1 {
				s.Layout = models.LayoutData
			} else {
				s.Layout = layout.Select(i, n, archetype, seed)
			}
		}

		switch {
		case s.Layout.IsList():
			s.Body = s.Body.AsBullets()
			s.Stats = nil
		case s.Layout.IsStats():
			if s.HasStats() {
				s.Body = models.Body{}
			}
		default:
			s.Stats = nil
		}
		out[i] = s
	}
	return out
}

func cleanStats(stats []models.Stat) []models.Stat {
	var out []models.Stat
	for _, st := range stats {
		st.Value = strings.TrimSpace(st.Value)
		st.Label = strings.TrimSpace(st.Label)
		if st.Value == "" {
			continue
		}
		out = append(out, st)
		if len(out) == maxStats {
			break
		}
	}
	return out
}
