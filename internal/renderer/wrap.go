// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import "strings"

// Wrap breaks text into lines no wider than maxWidth according to measure.
// Words accumulate greedily; a word that alone exceeds maxWidth still gets
// its own line and is never split or dropped. Explicit newlines start a
// new line. Text that already fits on one line is returned unchanged.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !strings.Contains(text, "\n") && measure(text) <= maxWidth {
		return []string{text}
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
