// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"testing"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
		ok   bool
	}{
		{"data", LayoutData, true},
		{"layout-data", LayoutData, true},
		{"Layout-Quote", LayoutQuote, true},
		{" cta ", LayoutCTA, true},
		{"stats", LayoutData, true},
		{"", LayoutDefault, false},
		{"layout-", LayoutDefault, false},
		{"carousel", LayoutDefault, false},
	}
	for _, tt := range tests {
		got, ok := ParseLayout(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLayout(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLayoutValidAndClass(t *testing.T) {
	for _, l := range Layouts {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
		if l.Class() != "layout-"+string(l) {
			t.Errorf("Class() = %q", l.Class())
		}
	}
	if LayoutDefault.Valid() {
		t.Error("default layout is not a styled layout")
	}
	if Layout("Data").Valid() {
		t.Error("non-canonical spelling should not be valid")
	}
	if len(Layouts) != 6 {
		t.Errorf("expected six layouts, got %d", len(Layouts))
	}
}

func TestLayoutUnmarshalLenient(t *testing.T) {
	var s struct {
		Layout Layout `json:"layout"`
	}
	if err := json.Unmarshal([]byte(`{"layout":"layout-split"}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Layout != LayoutSplit {
		t.Errorf("got %q", s.Layout)
	}
	if err := json.Unmarshal([]byte(`{"layout":42}`), &s); err != nil {
		t.Fatalf("numeric layout should not fail: %v", err)
	}
	if s.Layout != LayoutDefault {
		t.Errorf("numeric layout decoded to %q", s.Layout)
	}
}

func TestParseArchetype(t *testing.T) {
	tests := map[string]Archetype{
		"":              ArchetypeSuccessStory,
		"success-story": ArchetypeSuccessStory,
		"Success Story": ArchetypeSuccessStory,
		"Tips & Tricks": ArchetypeTips,
		"tutorial":      ArchetypeTutorial,
		"Data Insights": ArchetypeDataInsight,
		"data":          ArchetypeDataInsight,
	}
	for in, want := range tests {
		got, err := ParseArchetype(in)
		if err != nil {
			t.Errorf("ParseArchetype(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseArchetype(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseArchetype("poetry"); err == nil {
		t.Error("expected error for unknown archetype")
	}
}

func TestArchetypeStructure(t *testing.T) {
	for _, a := range Archetypes {
		if n := len(a.Structure()); n != 5 {
			t.Errorf("%s structure has %d sections, want 5", a, n)
		}
	}
	s := ArchetypeTutorial.Structure()
	s[0] = "mutated"
	if ArchetypeTutorial.Structure()[0] != "Introduction" {
		t.Error("Structure() exposed internal slice")
	}
}
