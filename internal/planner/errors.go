// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package planner

import (
	"errors"
	"fmt"
	"strings"

	"carouselpress/internal/strategy"
)

// ErrEmptyContent matches any *EmptyContentError via errors.Is.
var ErrEmptyContent = errors.New("no usable source text")

// EmptyContentError means there was nothing to plan from. It is the only
// planning error that callers must treat as fatal.
type EmptyContentError struct {
	// Reason describes what was empty, e.g. "whitespace only".
	Reason string
}

func (e *EmptyContentError) Error() string {
	if e.Reason == "" {
		return ErrEmptyContent.Error()
	}
	return ErrEmptyContent.Error() + ": " + e.Reason
}

// Is makes errors.Is(err, ErrEmptyContent) work.
func (e *EmptyContentError) Is(target error) bool { return target == ErrEmptyContent }

// ContentGenerationError reports that every model variant failed. The
// planner recovers from it with heuristic slides and surfaces it only as
// Result.Warning.
type ContentGenerationError struct {
	Attempts []strategy.Failure
}

func (e *ContentGenerationError) Error() string {
	if len(e.Attempts) == 0 {
		return "content generation failed: no model variants available"
	}
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Name
	}
	return fmt.Sprintf("content generation failed after %d attempt(s) (%s): %v; using keyword extraction",
		len(e.Attempts), strings.Join(names, ", "), e.Attempts[len(e.Attempts)-1].Err)
}

// Unwrap exposes each attempt's error.
func (e *ContentGenerationError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// ParseError is returned when a model response holds no usable slide array.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse slides: " + e.Reason + ": " + e.Err.Error()
	}
	return "parse slides: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
