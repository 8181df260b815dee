// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"carouselpress/internal/assembler"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
	"carouselpress/internal/session"
)

// maxSeed bounds generated layout seeds.
const maxSeed = 1_000_000

// sourceRequest is the planning input shared by /plans and /carousels.
type sourceRequest struct {
	Text      string          `json:"text"`
	URL       string          `json:"url"`
	Archetype string          `json:"archetype"`
	Seed      *int            `json:"seed"`
	Scheme    string          `json:"scheme"`
	Style     json.RawMessage `json:"style"`
}

type carouselRequest struct {
	sourceRequest
	Target string         `json:"target"`
	Slides []models.Slide `json:"slides"`
}

type draftUpdate struct {
	Archetype string          `json:"archetype"`
	Slides    []models.Slide  `json:"slides"`
	Style     json.RawMessage `json:"style"`
}

// carouselResponse is an assembled carousel with flattened warnings.
type carouselResponse struct {
	*assembler.Result
	Warnings []string `json:"warnings"`
}

// Transcript handles POST /api/transcripts.
func (a *API) Transcript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "URL is required.")
		return
	}
	if msg := validateSource("", req.URL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if a.transcripts == nil {
		writeError(w, http.StatusServiceUnavailable, "Transcript retrieval is not configured.")
		return
	}

	t, err := a.transcripts.Fetch(r.Context(), req.URL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreatePlan handles POST /api/plans. It plans the slides and stores them
// as a draft for review.
func (a *API) CreatePlan(w http.ResponseWriter, r *http.Request) {
	if a.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "Draft review is not configured.")
		return
	}
	var req sourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateSource(req.Text, req.URL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	archetype, style, msg := a.parseSettings(req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	text, ok := a.sourceText(w, r, req.Text, req.URL)
	if !ok {
		return
	}
	seed := seedOrRandom(req.Seed)
	plan, err := a.asm.Plan(r.Context(), text, archetype, seed)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	d := &session.Draft{
		Archetype: archetype,
		Seed:      seed,
		Style:     style,
		Slides:    plan.Slides,
		Source:    plan.Source,
		Model:     plan.Model,
	}
	if plan.Warning != nil {
		d.Warning = plan.Warning.Error()
	}
	if err := a.drafts.Create(r.Context(), d); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GetDraft handles GET /api/drafts/{id}.
func (a *API) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.loadDraft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateDraft handles PUT /api/drafts/{id}. Omitted fields keep their
// current values. Edited slides are normalized and mark the draft as
// reviewed.
func (a *API) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.loadDraft(w, r)
	if !ok {
		return
	}
	var req draftUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Archetype != "" {
		arch, err := models.ParseArchetype(req.Archetype)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		d.Archetype = arch
	}
	if hasJSON(req.Style) {
		style := d.Style
		if err := json.Unmarshal(req.Style, &style); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid style: "+err.Error())
			return
		}
		if msg := validateStyle(style, a.assetDir); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		d.Style = style
	}
	if req.Slides != nil {
		if msg := validateSlides(req.Slides); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		d.Slides = planner.NormalizeSlides(req.Slides, d.Archetype, d.Seed)
		d.Source = assembler.SourceReviewed
	}

	if err := a.drafts.Update(r.Context(), d); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteDraft handles DELETE /api/drafts/{id}.
func (a *API) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if a.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "Draft review is not configured.")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.drafts.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderDraft handles POST /api/drafts/{id}/render?target=. The draft is
// kept so it can be edited and rendered again.
func (a *API) RenderDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.loadDraft(w, r)
	if !ok {
		return
	}
	target, err := assembler.ParseTarget(r.URL.Query().Get("target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	style, err := resolveStyle(d.Style, a.assetDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.asm.Assemble(r.Context(), assembler.Request{
		Archetype: d.Archetype,
		Style:     style,
		Seed:      d.Seed,
		Target:    target,
		Slides:    d.Slides,
		Source:    d.Source,
		Model:     d.Model,
	})
	a.writeResult(w, r, res, err)
}

// CreateCarousel handles POST /api/carousels: plan and render in one call.
// When slides are supplied the planner is skipped.
func (a *API) CreateCarousel(w http.ResponseWriter, r *http.Request) {
	var req carouselRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	target, err := assembler.ParseTarget(req.Target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slides != nil {
		if msg := validateSlides(req.Slides); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	} else if msg := validateSource(req.Text, req.URL); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	archetype, style, msg := a.parseSettings(req.sourceRequest)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	style, err = resolveStyle(style, a.assetDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	asmReq := assembler.Request{
		Archetype: archetype,
		Style:     style,
		Seed:      seedOrRandom(req.Seed),
		Target:    target,
		Slides:    req.Slides,
	}
	if req.Slides == nil {
		text, ok := a.sourceText(w, r, req.Text, req.URL)
		if !ok {
			return
		}
		asmReq.Text = text
	}

	res, err := a.asm.Assemble(r.Context(), asmReq)
	a.writeResult(w, r, res, err)
}

// parseSettings resolves the archetype and merges the request style onto
// the configured defaults, applying the named scheme first.
func (a *API) parseSettings(req sourceRequest) (models.Archetype, models.StyleConfig, string) {
	style := a.style
	archetype, err := models.ParseArchetype(req.Archetype)
	if err != nil {
		return "", style, err.Error()
	}
	if req.Scheme != "" {
		cs, ok := models.FindColorScheme(req.Scheme)
		if !ok {
			return "", style, "Unknown color scheme \"" + req.Scheme + "\"."
		}
		style = style.WithScheme(cs)
	}
	if hasJSON(req.Style) {
		if err := json.Unmarshal(req.Style, &style); err != nil {
			return "", style, "Invalid style: " + err.Error()
		}
	}
	if msg := validateStyle(style, a.assetDir); msg != "" {
		return "", style, msg
	}
	return archetype, style, ""
}

// sourceText returns the request text, or the transcript of the URL when
// no text was given. It writes the error response itself.
func (a *API) sourceText(w http.ResponseWriter, r *http.Request, text, rawURL string) (string, bool) {
	if strings.TrimSpace(text) != "" {
		return text, true
	}
	if a.transcripts == nil {
		writeError(w, http.StatusServiceUnavailable, "Transcript retrieval is not configured.")
		return "", false
	}
	t, err := a.transcripts.Fetch(r.Context(), rawURL)
	if err != nil {
		a.fail(w, r, err)
		return "", false
	}
	return t.Text, true
}

func (a *API) loadDraft(w http.ResponseWriter, r *http.Request) (*session.Draft, bool) {
	if a.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "Draft review is not configured.")
		return nil, false
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return nil, false
	}
	d, err := a.drafts.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return nil, false
	}
	return d, true
}

// writeResult answers an Assemble call. A run where nothing rendered is a
// 500 that still lists the collected warnings.
func (a *API) writeResult(w http.ResponseWriter, r *http.Request, res *assembler.Result, err error) {
	if errors.Is(err, assembler.ErrNothingRendered) && res != nil {
		a.logger.Error("carousel produced no slides", "run_id", res.ID, "warnings", len(res.Warnings))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error(), Warnings: res.WarningMessages()})
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, carouselResponse{Result: res, Warnings: res.WarningMessages()})
}

func hasJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null"
}

func seedOrRandom(seed *int) int {
	if seed != nil {
		return *seed
	}
	return rand.IntN(maxSeed)
}

var _ DraftStore = (*session.Store)(nil)
