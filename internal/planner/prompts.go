// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"fmt"
	"strings"

	"carouselpress/internal/models"
)

const systemPrompt = `You are a LinkedIn marketing expert who turns long-form source material into punchy, professional carousel slides for a business audience.
You respond with a JSON array only. No commentary, no markdown fences.`

// archetypeGuidance adds per-archetype instructions on top of the section
// structure.
var archetypeGuidance = map[models.Archetype]string{
	models.ArchetypeSuccessStory: "Tell a client success story: the hook sets up the context, then the pain point, how it was solved, and concrete results. Put measurable outcomes in stats.",
	models.ArchetypeTutorial:     "Write a step-by-step guide. Each step slide has one clear action as the title and short bullets explaining it.",
	models.ArchetypeTips:         "Share quick, actionable advice. Prefer short bullets and one memorable quote-style slide.",
	models.ArchetypeDataInsight:  "Lead with the numbers. Use data slides with 2-3 stats each and keep the analysis brief.",
}

// buildUserPrompt assembles the structuring instruction for one archetype.
func buildUserPrompt(archetype models.Archetype, text string, slideCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-slide LinkedIn carousel (%s) from the source text below.\n\n", slideCount, archetype.Label())
	b.WriteString(archetypeGuidance[archetype])
	b.WriteString("\n\nStructure:\n")
	for i, section := range sectionPlan(archetype, slideCount) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, section)
	}

	b.WriteString(`
Each slide is an object with these keys:
- "title": short headline, at most 8 words
- "subtitle": 1-3 word eyebrow label
- "body": a short paragraph string, or an array of 2-4 bullet strings
- "stats": optional array of {"value": "45%", "label": "Growth"}; only on data slides, and then omit body
- "layout": one of "layout-cover", "layout-quote", "layout-list", "layout-data", "layout-split", "layout-cta"

Rules:
- The first slide uses "layout-cover" and the last slide uses "layout-cta".
- Avoid repeating the previous slide's layout.
- Use "layout-list" only with an array body.
- Keep every bullet under 15 words.

Output format:
[
  {"title": "Slide 1 Title", "subtitle": "Hook", "body": "Short body text", "layout": "layout-cover"},
  {"title": "Slide 2 Title", "subtitle": "Challenge", "body": ["Bullet 1", "Bullet 2"], "layout": "layout-list"}
]

Source text:
`)
	b.WriteString(text)
	return b.String()
}

// sectionPlan stretches the five-section archetype structure to the
// requested slide count by repeating the middle sections.
func sectionPlan(archetype models.Archetype, slideCount int) []string {
	base := archetype.Structure()
	if slideCount <= len(base) {
		return base
	}
	middle := base[1 : len(base)-1]
	plan := []string{base[0]}
	for i := 0; len(plan) < slideCount-1; i++ {
		section := middle[i%len(middle)]
		if i >= len(middle) {
			section += " (continued)"
		}
		plan = append(plan, section)
	}
	return append(plan, base[len(base)-1])
}
