// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package strategy runs an ordered list of interchangeable attempts and
// stops at the first one that succeeds. It backs both model-variant
// fallback in the planner and transcript retrieval.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrNoStrategies is returned by First when the list is empty.
var ErrNoStrategies = errors.New("strategy: no strategies configured")

// Strategy is one named way of producing a T.
type Strategy[T any] interface {
	Name() string
	Attempt(ctx context.Context) (T, error)
}

// Func adapts a plain function to Strategy.
type Func[T any] struct {
	Label string
	Fn    func(ctx context.Context) (T, error)
}

// Name returns the label.
func (f Func[T]) Name() string { return f.Label }

// Attempt calls the wrapped function.
func (f Func[T]) Attempt(ctx context.Context) (T, error) { return f.Fn(ctx) }

// Failure records why one strategy did not succeed.
type Failure struct {
	Name     string
	Err      error
	Duration time.Duration
}

// ExhaustedError is returned when every strategy failed.
type ExhaustedError struct {
	Failures []Failure
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Name, f.Err)
	}
	return "all strategies failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// First tries each strategy in order and returns the first success along
// with the name of the winner. Attempts run sequentially. A cancelled
// context stops the loop and is returned as-is.
func First[T any](ctx context.Context, strategies []Strategy[T]) (T, string, error) {
	var zero T
	if len(strategies) == 0 {
		return zero, "", ErrNoStrategies
	}

	var failures []Failure
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return zero, "", err
		}

		start := time.Now()
		v, err := s.Attempt(ctx)
		if err == nil {
			if len(failures) > 0 {
				slog.Info("strategy succeeded after fallback",
					"strategy", s.Name(),
					"failed", len(failures),
				)
			}
			return v, s.Name(), nil
		}

		slog.Warn("strategy attempt failed",
			"strategy", s.Name(),
			"error", err,
			"duration", time.Since(start).String(),
		)
		failures = append(failures, Failure{Name: s.Name(), Err: err, Duration: time.Since(start)})
	}
	return zero, "", &ExhaustedError{Failures: failures}
}
