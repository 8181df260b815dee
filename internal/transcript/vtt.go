// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package transcript

import (
	"regexp"
	"strings"
)

var (
	vttHeaderRe   = regexp.MustCompile(`^WEBVTT\b`)
	vttMetaRe     = regexp.MustCompile(`^(Kind|Language|NOTE|STYLE|REGION)\b`)
	vttTimingRe   = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}\.\d{3}\s*-->\s*(\d{2}:)?\d{2}:\d{2}\.\d{3}`)
	vttCueIDRe    = regexp.MustCompile(`^\d+$`)
	vttTagRe      = regexp.MustCompile(`<[^>]+>`)
	vttEntityRepl = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", " ", "&#39;", "'", "&quot;", `"`)
)

// CleanVTT reduces WebVTT caption content to plain text. Headers, cue
// timings, cue IDs and inline tags are removed, and the rolling repeats of
// auto-generated captions are collapsed.
func CleanVTT(raw string) string {
	var out []string
	prev := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			vttHeaderRe.MatchString(trimmed),
			vttMetaRe.MatchString(trimmed),
			vttTimingRe.MatchString(trimmed),
			vttCueIDRe.MatchString(trimmed):
			continue
		}

		text := strings.TrimSpace(vttEntityRepl.Replace(vttTagRe.ReplaceAllString(trimmed, "")))
		if text == "" || text == prev {
			continue
		}
		prev = text
		out = append(out, text)
	}
	return strings.Join(out, " ")
}
