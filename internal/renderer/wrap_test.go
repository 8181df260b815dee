// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// monospace measures every rune as 10 units.
func monospace(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 100, nil},
		{"blank", "  \n ", 100, nil},
		{"fits unchanged", "short  line", 200, []string{"short  line"}},
		{"greedy", "aaa bbb ccc ddd", 70, []string{"aaa bbb", "ccc ddd"}},
		{"exact width", "aaaa bbbb", 90, []string{"aaaa bbbb"}},
		{"long token alone", "supercalifragilistic", 50, []string{"supercalifragilistic"}},
		{"long token in middle", "a supercalifragilistic b", 50, []string{"a", "supercalifragilistic", "b"}},
		{"newlines", "one\ntwo three", 200, []string{"one", "two three"}},
		{"skips empty paragraphs", "one\n\ntwo", 200, []string{"one", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, monospace)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapIdempotent(t *testing.T) {
	for _, s := range []string{"x", "Hello world", "Ünïcödé wörds here"} {
		got := Wrap(s, 1000, monospace)
		if len(got) != 1 || got[0] != s {
			t.Errorf("Wrap(%q) = %q, want it unchanged", s, got)
		}
	}
}

func TestWrapTotal(t *testing.T) {
	texts := []string{
		strings.Repeat("x", 500),
		"The quick brown fox jumps over the lazy dog " + strings.Repeat("z", 80) + " and keeps running",
		strings.Repeat("word ", 200),
	}
	for _, text := range texts {
		for _, width := range []float64{0, 10, 55, 300} {
			lines := Wrap(text, width, monospace)
			if strings.Join(strings.Fields(strings.Join(lines, " ")), " ") != strings.Join(strings.Fields(text), " ") {
				t.Fatalf("Wrap(%.20q, %v) dropped or reordered content", text, width)
			}
			for _, l := range lines {
				if monospace(l) > width && strings.Contains(l, " ") {
					t.Errorf("line %q exceeds width %v with a break available", l, width)
				}
			}
		}
	}
}
