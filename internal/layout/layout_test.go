// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"testing"

	"carouselpress/internal/models"
)

func TestSelectFixedEnds(t *testing.T) {
	for _, a := range models.Archetypes {
		for total := 2; total <= 8; total++ {
			for seed := -3; seed < 20; seed++ {
				if got := Select(0, total, a, seed); got != models.LayoutCover {
					t.Fatalf("Select(0, %d, %s, %d) = %q, want cover", total, a, seed, got)
				}
				if got := Select(total-1, total, a, seed); got != models.LayoutCTA {
					t.Fatalf("Select(%d, %d, %s, %d) = %q, want cta", total-1, total, a, seed, got)
				}
			}
		}
	}
}

func TestSelectIsPure(t *testing.T) {
	for _, a := range models.Archetypes {
		for seed := 0; seed < 50; seed++ {
			for i := 0; i < 8; i++ {
				first := Select(i, 8, a, seed)
				// Interleave other calls to prove there is no shared generator.
				_ = Select(3, 8, models.ArchetypeTips, seed+7)
				if again := Select(i, 8, a, seed); again != first {
					t.Fatalf("Select(%d, 8, %s, %d) not deterministic: %q then %q", i, a, seed, first, again)
				}
			}
		}
	}
}

func TestSelectClosedSet(t *testing.T) {
	for _, a := range append(models.Archetypes, models.Archetype("unknown")) {
		for seed := 0; seed < 100; seed++ {
			for _, l := range Sequence(8, a, seed) {
				if !l.Valid() {
					t.Fatalf("Sequence produced %q outside the layout set", l)
				}
			}
		}
	}
}

func TestSelectAvoidsRepeats(t *testing.T) {
	for _, a := range models.Archetypes {
		for seed := 0; seed < 200; seed++ {
			seq := Sequence(8, a, seed)
			for i := 1; i < len(seq); i++ {
				if seq[i] == seq[i-1] {
					t.Fatalf("archetype %s seed %d repeats %q at %d: %v", a, seed, seq[i], i, seq)
				}
			}
		}
	}
}

func TestSelectArchetypeBias(t *testing.T) {
	count := func(a models.Archetype, want models.Layout) int {
		n := 0
		for seed := 0; seed < 2000; seed++ {
			if Select(2, 5, a, seed) == want {
				n++
			}
		}
		return n
	}
	if data, story := count(models.ArchetypeDataInsight, models.LayoutData), count(models.ArchetypeSuccessStory, models.LayoutData); data <= story {
		t.Errorf("data-insight should favour data layout: %d vs %d", data, story)
	}
	if list, story := count(models.ArchetypeTutorial, models.LayoutList), count(models.ArchetypeSuccessStory, models.LayoutList); list <= story {
		t.Errorf("tutorial should favour list layout: %d vs %d", list, story)
	}
}

func TestSingleSlide(t *testing.T) {
	if got := Select(0, 1, models.ArchetypeTips, 0); got != models.LayoutCover {
		t.Errorf("single slide = %q, want cover", got)
	}
}

func TestAssignKeepsValidTags(t *testing.T) {
	slides := []models.Slide{
		{Layout: models.LayoutDefault},
		{Layout: models.LayoutQuote},
		{Layout: models.Layout("weird")},
		{},
	}
	Assign(slides, models.ArchetypeTips, 42)
	if slides[0].Layout != models.LayoutCover {
		t.Errorf("slide 0 = %q", slides[0].Layout)
	}
	if slides[1].Layout != models.LayoutQuote {
		t.Errorf("valid tag overwritten: %q", slides[1].Layout)
	}
	if !slides[2].Layout.Valid() {
		t.Errorf("unknown tag not replaced: %q", slides[2].Layout)
	}
	if slides[3].Layout != models.LayoutCTA {
		t.Errorf("last slide = %q", slides[3].Layout)
	}
}
