// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Archetype is the narrative template that governs section structure.
type Archetype string

const (
	ArchetypeSuccessStory Archetype = "success-story"
	ArchetypeTutorial     Archetype = "tutorial"
	ArchetypeTips         Archetype = "tips"
	ArchetypeDataInsight  Archetype = "data-insight"
)

// Archetypes lists every supported archetype.
var Archetypes = []Archetype{ArchetypeSuccessStory, ArchetypeTutorial, ArchetypeTips, ArchetypeDataInsight}

var archetypeInfo = map[Archetype]struct {
	label       string
	description string
	structure   []string
}{
	ArchetypeSuccessStory: {
		label:       "Success Story",
		description: "Client success story with problem-solution-result structure",
		structure:   []string{"Hook", "Challenge", "Solution", "Result", "CTA"},
	},
	ArchetypeTutorial: {
		label:       "Tutorial",
		description: "Step-by-step guide or how-to content",
		structure:   []string{"Introduction", "Step 1", "Step 2", "Step 3", "Conclusion"},
	},
	ArchetypeTips: {
		label:       "Tips & Tricks",
		description: "Quick actionable advice and insights",
		structure:   []string{"Hook", "Tips", "Best Practices", "Common Mistakes", "CTA"},
	},
	ArchetypeDataInsight: {
		label:       "Data Insights",
		description: "Statistics and data-driven content",
		structure:   []string{"Introduction", "Key Stat 1", "Key Stat 2", "Analysis", "Takeaway"},
	},
}

// ParseArchetype accepts the canonical slug or the display label, case
// insensitively ("Tips & Tricks", "tips", "data insights").
func ParseArchetype(s string) (Archetype, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return ArchetypeSuccessStory, nil
	}
	for a, info := range archetypeInfo {
		if norm == string(a) || norm == strings.ToLower(info.label) {
			return a, nil
		}
	}
	switch strings.NewReplacer(" ", "-", "_", "-", "&", "").Replace(norm) {
	case "success", "story", "narrative":
		return ArchetypeSuccessStory, nil
	case "how-to", "howto", "guide":
		return ArchetypeTutorial, nil
	case "tips--tricks", "tips-tricks":
		return ArchetypeTips, nil
	case "data", "data-insights", "insights":
		return ArchetypeDataInsight, nil
	}
	return "", fmt.Errorf("unknown archetype %q", s)
}

// Label returns the display name.
func (a Archetype) Label() string {
	if info, ok := archetypeInfo[a]; ok {
		return info.label
	}
	return string(a)
}

// Description returns a one-line summary for UIs and prompts.
func (a Archetype) Description() string {
	return archetypeInfo[a].description
}

// Structure returns the ordered section names for a five-slide carousel.
func (a Archetype) Structure() []string {
	info, ok := archetypeInfo[a]
	if !ok {
		info = archetypeInfo[ArchetypeSuccessStory]
	}
	out := make([]string, len(info.structure))
	copy(out, info.structure)
	return out
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	_, ok := archetypeInfo[a]
	return ok
}
