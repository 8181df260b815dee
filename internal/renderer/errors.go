// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package renderer

import "fmt"

// Asset kinds reported by AssetResolutionError.
const (
	AssetLogo       = "logo"
	AssetBackground = "background"
	AssetQRCode     = "qrcode"
)

// AssetResolutionError records an optional asset that could not be used.
// The renderer substitutes a fallback and never returns this error; it is
// only collected in Composition.Substitutions.
type AssetResolutionError struct {
	Kind string
	Path string
	Err  error
}

func (e *AssetResolutionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s unavailable: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %q unavailable: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetResolutionError) Unwrap() error { return e.Err }

// SlideRenderError means one slide could not be composed or encoded.
// Sibling slides are unaffected.
type SlideRenderError struct {
	Index int
	Err   error
}

func (e *SlideRenderError) Error() string {
	return fmt.Sprintf("render slide_%d: %v", e.Index+1, e.Err)
}

func (e *SlideRenderError) Unwrap() error { return e.Err }
