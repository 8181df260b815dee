// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package textnorm cleans raw source text (transcripts or pasted copy) and
// splits it into sentences for the heuristic planner.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"carouselpress/internal/markdown"
)

// MinSentenceLength is the rune count below which a sentence is treated as
// a fragment (filler words, caption noise) and dropped.
const MinSentenceLength = 25

var (
	// [Music], [Applause], [00:01:02], [inaudible] ...
	reBracketed = regexp.MustCompile(`\[[^\]]*\]`)
	// (00:12), (1:02:33)
	reParenTimestamp = regexp.MustCompile(`\(\s*\d{1,2}(:\d{2}){1,2}\s*\)`)
	// bare 00:12 or 1:02:33 tokens left in pasted captions
	reTimestamp  = regexp.MustCompile(`\b\d{1,2}(:\d{2}){1,2}(\.\d{1,3})?\b`)
	reWhitespace = regexp.MustCompile(`\s+`)
	// terminal punctuation (optionally followed by closing quotes) then space
	reSentenceEnd = regexp.MustCompile(`([.!?]+["'\x{201D}\x{2019})]*)\s+`)
)

var charReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u200b", "",
	"\r", "",
	">>", " ",
)

// Normalize strips bracketed annotations and timestamps, then collapses
// all whitespace runs to single spaces.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = charReplacer.Replace(text)
	text = reBracketed.ReplaceAllString(text, " ")
	text = reParenTimestamp.ReplaceAllString(text, " ")
	text = reTimestamp.ReplaceAllString(text, " ")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsBlank reports whether text has no content once normalized.
func IsBlank(text string) bool {
	return Normalize(text) == ""
}

// Sentences splits on terminal punctuation followed by whitespace. The
// punctuation stays with its sentence. Text without terminal punctuation
// is returned as one sentence.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	start := 0
	for _, loc := range reSentenceEnd.FindAllStringSubmatchIndex(text, -1) {
		// loc[3] is the end of the punctuation group.
		s := strings.TrimSpace(text[start:loc[3]])
		if s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Filter drops sentences shorter than minLen runes.
func Filter(sentences []string, minLen int) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if utf8.RuneCountInString(s) >= minLen {
			out = append(out, s)
		}
	}
	return out
}

// Prepare is the full heuristic pipeline: normalize, split, filter. When
// every sentence is a fragment the unfiltered split is returned so short
// inputs still yield content.
func Prepare(text string) []string {
	all := Sentences(Normalize(text))
	kept := Filter(all, MinSentenceLength)
	if len(kept) == 0 {
		return all
	}
	return kept
}

// FromMarkdown converts pasted Markdown into sentence-friendly plain text.
// Block elements without terminal punctuation (headings, list items) get a
// period so they split as separate sentences.
func FromMarkdown(src string) string {
	lines := strings.Split(markdown.ToPlainText(src), "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(line)
		if !strings.ContainsRune(".!?:;", last) {
			line += "."
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// LooksLikeMarkdown is a cheap check for common Markdown markers so plain
// transcripts skip the parser.
func LooksLikeMarkdown(src string) bool {
	for _, marker := range []string{"\n#", "**", "](", "\n- ", "\n* ", "```", "\n1. "} {
		if strings.Contains("\n"+src, marker) {
			return true
		}
	}
	return false
}

// Truncate shortens s to at most maxRunes runes, cutting at the last word
// boundary and appending "...". Strings that fit are returned unchanged.
func Truncate(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	cut := runes[:maxRunes]
	if i := lastSpace(cut); i > maxRunes/2 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "..."
}

// Words returns the first n words of s.
func Words(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ")
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}
