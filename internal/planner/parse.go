// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"carouselpress/internal/models"
)

const (
	// MaxSlides caps a model-produced carousel.
	MaxSlides = 8
	// MinModelSlides is the fewest slides accepted from a model (cover + cta).
	MinModelSlides = 2
	// maxStats caps stat boxes per slide.
	maxStats = 4
)

// looseString accepts a JSON string, number or bool and keeps its text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = looseString(strconv.FormatBool(b))
		return nil
	}
	*s = ""
	return nil
}

type rawStat struct {
	Value looseString `json:"value"`
	Label looseString `json:"label"`
}

// rawSlide is the JSON shape the model is asked to emit.
type rawSlide struct {
	Title    looseString   `json:"title"`
	Subtitle looseString   `json:"subtitle"`
	Body     models.Body   `json:"body"`
	Stats    []rawStat     `json:"stats"`
	Layout   models.Layout `json:"layout"`
}

// ExtractJSONArray returns the substring from the first '[' to the last
// ']' inclusive, which tolerates prose and code fences around the array.
func ExtractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseSlides decodes a model response into slides. It does not assign
// layouts; see NormalizeSlides.
func ParseSlides(raw string) ([]models.Slide, error) {
	arr, ok := ExtractJSONArray(raw)
	if !ok {
		return nil, &ParseError{Reason: "no JSON array in response"}
	}

	var items []rawSlide
	if err := json.Unmarshal([]byte(arr), &items); err != nil {
		return nil, &ParseError{Reason: "invalid JSON array", Err: err}
	}

	slides := make([]models.Slide, 0, len(items))
	for _, it := range items {
		s := models.Slide{
			Title:    strings.TrimSpace(string(it.Title)),
			Subtitle: strings.TrimSpace(string(it.Subtitle)),
			Body:     it.Body,
			Layout:   it.Layout,
		}
		for _, st := range it.Stats {
			s.Stats = append(s.Stats, models.Stat{
				Value: strings.TrimSpace(string(st.Value)),
				Label: strings.TrimSpace(string(st.Label)),
			})
		}
		if s.Title == "" && s.Subtitle == "" && s.Body.IsEmpty() && !s.HasStats() {
			continue
		}
		slides = append(slides, s)
	}

	if len(slides) < MinModelSlides {
		return nil, &ParseError{Reason: fmt.Sprintf("got %d usable slides, need at least %d", len(slides), MinModelSlides)}
	}
	if len(slides) > MaxSlides {
		slides = slides[:MaxSlides]
	}
	return slides, nil
}
