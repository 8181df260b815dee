// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"carouselpress/internal/assembler"
	"carouselpress/internal/layout"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
)

const (
	defaultRunLimit = 20
	maxPreviewTotal = maxReviewSlides
)

type archetypeOption struct {
	Value       string   `json:"value"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Structure   []string `json:"structure"`
}

type resolutionOption struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type optionsResponse struct {
	Archetypes      []archetypeOption       `json:"archetypes"`
	Schemes         []models.ColorScheme    `json:"schemes"`
	Fonts           []string                `json:"fonts"`
	Resolutions     []resolutionOption      `json:"resolutions"`
	Formats         []models.ExportFormat   `json:"formats"`
	Layouts         []models.Layout         `json:"layouts"`
	BackgroundModes []models.BackgroundMode `json:"background_modes"`
	Targets         []assembler.Target      `json:"targets"`
	Defaults        models.StyleConfig      `json:"defaults"`
}

// Options handles GET /api/options. It lists every choice the form offers.
func (a *API) Options(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{
		Schemes:         models.ColorSchemes,
		Fonts:           a.fonts,
		Formats:         []models.ExportFormat{models.FormatPNG, models.FormatJPEG},
		Layouts:         models.Layouts,
		BackgroundModes: []models.BackgroundMode{models.BackgroundGradient, models.BackgroundSolid, models.BackgroundPattern, models.BackgroundImage},
		Targets:         []assembler.Target{assembler.TargetRaster, assembler.TargetHTML},
		Defaults:        a.style,
	}
	for _, arch := range models.Archetypes {
		resp.Archetypes = append(resp.Archetypes, archetypeOption{
			Value:       string(arch),
			Label:       arch.Label(),
			Description: arch.Description(),
			Structure:   arch.Structure(),
		})
	}
	for name, size := range models.Resolutions {
		resp.Resolutions = append(resp.Resolutions, resolutionOption{Name: name, Size: size})
	}
	slices.SortFunc(resp.Resolutions, func(x, y resolutionOption) int { return cmp.Compare(x.Size, y.Size) })
	writeJSON(w, http.StatusOK, resp)
}

// LayoutPreview handles GET /api/layouts/preview?total=&archetype=&seed=.
// The same query always returns the same sequence.
func (a *API) LayoutPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	total, ok := queryInt(w, q.Get("total"), planner.DefaultSlideCount, "total")
	if !ok {
		return
	}
	if total < 1 || total > maxPreviewTotal {
		writeError(w, http.StatusBadRequest, "total must be between 1 and "+strconv.Itoa(maxPreviewTotal)+".")
		return
	}
	seed, ok := queryInt(w, q.Get("seed"), 0, "seed")
	if !ok {
		return
	}
	archetype, err := models.ParseArchetype(q.Get("archetype"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"archetype": archetype,
		"seed":      seed,
		"total":     total,
		"layouts":   layout.Sequence(total, archetype, seed),
		"structure": archetype.Structure(),
	})
}

// GetRun handles GET /api/runs/{id}.
func (a *API) GetRun(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not configured.")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	run, err := a.runs.FindByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found.")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListRuns handles GET /api/runs?limit=, newest first.
func (a *API) ListRuns(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not configured.")
		return
	}
	limit, ok := queryInt(w, r.URL.Query().Get("limit"), defaultRunLimit, "limit")
	if !ok {
		return
	}
	runs, err := a.runs.Recent(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// queryInt parses an optional integer query value.
func queryInt(w http.ResponseWriter, raw string, def int, name string) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be an integer.")
		return 0, false
	}
	return n, true
}
