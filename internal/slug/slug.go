// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns titles and file names into lowercase ASCII names that
// are safe as output directories and download file names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultName is used by Name when nothing usable is left.
const DefaultName = "carousel"

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a slug from the given string. Accents are folded to
// their base letter before other symbols are dropped.
// Example: "Café Résumé, 2026!" → "cafe-resume-2026"
func Generate(s string) string {
	// A transformer chain holds state, so build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	result := strings.ToLower(strings.TrimSpace(folded))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Name returns Generate(s) cut to at most max bytes, preferring to cut at
// a hyphen. It never returns an empty string.
func Name(s string, max int) string {
	result := Generate(s)
	if max > 0 && len(result) > max {
		cut := result[:max]
		if i := strings.LastIndexByte(cut, '-'); i >= max/2 {
			cut = cut[:i]
		}
		result = strings.Trim(cut, "-")
	}
	if result == "" {
		return DefaultName
	}
	return result
}
