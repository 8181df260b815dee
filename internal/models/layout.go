// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
)

// Layout selects the rendering code path for a slide.
type Layout string

const (
	LayoutDefault Layout = ""
	LayoutCover   Layout = "cover"
	LayoutQuote   Layout = "quote"
	LayoutList    Layout = "list"
	LayoutData    Layout = "data"
	LayoutSplit   Layout = "split"
	LayoutCTA     Layout = "cta"
)

// Layouts lists the closed set of styled layouts in canonical order.
var Layouts = []Layout{LayoutCover, LayoutQuote, LayoutList, LayoutData, LayoutSplit, LayoutCTA}

// layoutClassPrefix is the CSS class prefix used by the HTML template and
// accepted from model output ("layout-data").
const layoutClassPrefix = "layout-"

// layoutAliases maps loose spellings seen in model output to canonical tags.
var layoutAliases = map[string]Layout{
	"stats":          LayoutData,
	"stat":           LayoutData,
	"bullets":        LayoutList,
	"hook":           LayoutCover,
	"title":          LayoutCover,
	"call-to-action": LayoutCTA,
}

// ParseLayout resolves a tag such as "data", "layout-data" or "Layout-Data".
// Unknown or blank input returns LayoutDefault and false.
func ParseLayout(s string) (Layout, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, layoutClassPrefix)
	if s == "" {
		return LayoutDefault, false
	}
	for _, l := range Layouts {
		if string(l) == s {
			return l, true
		}
	}
	if l, ok := layoutAliases[s]; ok {
		return l, true
	}
	return LayoutDefault, false
}

// Valid reports whether l is one of the six styled layouts.
func (l Layout) Valid() bool {
	for _, x := range Layouts {
		if l == x {
			return true
		}
	}
	return false
}

// Class returns the CSS class form, e.g. "layout-data". The default layout
// has no class.
func (l Layout) Class() string {
	if l == LayoutDefault {
		return ""
	}
	return layoutClassPrefix + string(l)
}

// IsStats reports whether the layout renders stat boxes.
func (l Layout) IsStats() bool { return l == LayoutData }

// IsList reports whether the layout mandates a bulleted body.
func (l Layout) IsList() bool { return l == LayoutList }

// UnmarshalJSON is lenient: unknown tags decode to LayoutDefault so the
// planner can assign one by position.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = LayoutDefault
		return nil
	}
	parsed, _ := ParseLayout(s)
	*l = parsed
	return nil
}
