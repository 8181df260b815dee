// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import "carouselpress/internal/models"

// Section identifies one of the three body sections the heuristic fills.
type Section int

const (
	SectionChallenge Section = iota
	SectionSolution
	SectionResult
)

// sections lists Section values in slide order.
var sections = []Section{SectionChallenge, SectionSolution, SectionResult}

func (s Section) String() string {
	switch s {
	case SectionChallenge:
		return "challenge"
	case SectionSolution:
		return "solution"
	default:
		return "result"
	}
}

// sectionCopy is the fixed text for one heuristic slide.
type sectionCopy struct {
	subtitle string
	title    string
}

// archetypeTable holds the keyword sets and fixed copy for one archetype.
type archetypeTable struct {
	keywords  map[Section][]string
	hookTitle string
	copy      map[Section]sectionCopy
	cta       sectionCopy
	ctaBody   string
}

var tables = map[models.Archetype]archetypeTable{
	models.ArchetypeSuccessStory: {
		keywords: map[Section][]string{
			SectionChallenge: {"problem", "challenge", "struggle", "difficult", "pain", "issue", "manual", "slow", "bottleneck", "lack", "inefficient", "frustrat"},
			SectionSolution:  {"solution", "implement", "solve", "introduce", "adopt", "automat", "built", "deploy", "switch", "integrat", "decided", "approach"},
			SectionResult:    {"result", "outcome", "increase", "reduc", "improv", "growth", "grew", "saved", "impact", "%", "faster", "roi"},
		},
		hookTitle: "How They Turned It Around",
		copy: map[Section]sectionCopy{
			SectionChallenge: {subtitle: "The Challenge", title: "Identifying the Key Bottlenecks"},
			SectionSolution:  {subtitle: "The Solution", title: "How the Problem Was Solved"},
			SectionResult:    {subtitle: "The Impact", title: "Measurable Business Results"},
		},
		cta:     sectionCopy{subtitle: "Partner with Us", title: "Ready to Write Your Success Story?"},
		ctaBody: "Follow for more stories like this and reach out to start yours.",
	},
	models.ArchetypeTutorial: {
		keywords: map[Section][]string{
			SectionChallenge: {"problem", "need", "why", "before", "struggle", "hard", "confus", "goal", "want to"},
			SectionSolution:  {"step", "first", "then", "next", "install", "set up", "click", "create", "open", "configure", "run"},
			SectionResult:    {"result", "finally", "done", "now you", "works", "outcome", "ready", "complete"},
		},
		hookTitle: "A Step-by-Step Guide",
		copy: map[Section]sectionCopy{
			SectionChallenge: {subtitle: "Getting Started", title: "Why This Matters"},
			SectionSolution:  {subtitle: "Step by Step", title: "How To Do It"},
			SectionResult:    {subtitle: "The Outcome", title: "What You End Up With"},
		},
		cta:     sectionCopy{subtitle: "Your Turn", title: "Try It Today"},
		ctaBody: "Save this guide and share it with someone who needs it.",
	},
	models.ArchetypeTips: {
		keywords: map[Section][]string{
			SectionChallenge: {"mistake", "avoid", "don't", "never", "wrong", "problem", "pitfall", "trap", "common"},
			SectionSolution:  {"tip", "try", "use", "always", "best", "should", "trick", "practice", "habit"},
			SectionResult:    {"result", "save", "faster", "better", "improv", "increase", "benefit", "easier"},
		},
		hookTitle: "Tips You Can Use Today",
		copy: map[Section]sectionCopy{
			SectionChallenge: {subtitle: "Common Mistakes", title: "What Holds People Back"},
			SectionSolution:  {subtitle: "Best Practices", title: "Tips That Actually Work"},
			SectionResult:    {subtitle: "The Payoff", title: "Why It Works"},
		},
		cta:     sectionCopy{subtitle: "Save This", title: "Which Tip Will You Try First?"},
		ctaBody: "Follow for more practical tips every week.",
	},
	models.ArchetypeDataInsight: {
		keywords: map[Section][]string{
			SectionChallenge: {"problem", "challenge", "decline", "gap", "risk", "cost", "drop", "fell", "concern"},
			SectionSolution:  {"analysis", "data", "found", "show", "trend", "because", "driven", "survey", "study"},
			SectionResult:    {"result", "%", "percent", "growth", "increase", "million", "billion", "grew", "times"},
		},
		hookTitle: "The Numbers Tell the Story",
		copy: map[Section]sectionCopy{
			SectionChallenge: {subtitle: "The Context", title: "What the Data Shows"},
			SectionSolution:  {subtitle: "The Analysis", title: "Behind the Numbers"},
			SectionResult:    {subtitle: "Key Numbers", title: "The Takeaway"},
		},
		cta:     sectionCopy{subtitle: "Takeaway", title: "Want More Data Like This?"},
		ctaBody: "Follow for weekly insights backed by real numbers.",
	},
}

func tableFor(a models.Archetype) archetypeTable {
	if t, ok := tables[a]; ok {
		return t
	}
	return tables[models.ArchetypeSuccessStory]
}
