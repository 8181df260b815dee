// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: transcript lookup, planning
// into review drafts, rendering, run history and the option tables the
// client builds its form from.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"carouselpress/internal/assembler"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
	"carouselpress/internal/session"
	"carouselpress/internal/transcript"
)

// maxRequestBody caps JSON request bodies. Source text is limited to
// maxTextLen runes, so this leaves room for multi-byte text and the rest
// of the payload.
const maxRequestBody = 1 << 20

// DraftStore persists review drafts. session.Store implements it.
type DraftStore interface {
	Create(ctx context.Context, d *session.Draft) error
	Get(ctx context.Context, id uuid.UUID) (*session.Draft, error)
	Update(ctx context.Context, d *session.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RunReader reads run history. store.RunStore implements it.
type RunReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Run, error)
	Recent(ctx context.Context, limit int) ([]models.Run, error)
}

// TranscriptFetcher turns a video URL into text. transcript.Fetcher
// implements it.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*transcript.Transcript, error)
}

// Deps are the API collaborators. Only Assembler is required; endpoints
// whose backend is nil answer 503.
type Deps struct {
	Assembler   *assembler.Assembler
	Drafts      DraftStore
	Runs        RunReader
	Transcripts TranscriptFetcher
	// Style is the base every request style is merged onto.
	Style models.StyleConfig
	// AssetDir is where logo and background names are resolved.
	AssetDir string
	// Fonts lists the families the renderer has loaded.
	Fonts  []string
	Logger *slog.Logger
}

// API groups the JSON endpoints.
type API struct {
	asm         *assembler.Assembler
	drafts      DraftStore
	runs        RunReader
	transcripts TranscriptFetcher
	style       models.StyleConfig
	assetDir    string
	fonts       []string
	logger      *slog.Logger
}

// NewAPI creates the API handlers.
func NewAPI(d Deps) *API {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if len(d.Fonts) == 0 {
		d.Fonts = models.FontFamilies
	}
	return &API{
		asm:         d.Assembler,
		drafts:      d.Drafts,
		runs:        d.Runs,
		transcripts: d.Transcripts,
		style:       d.Style,
		assetDir:    d.AssetDir,
		fonts:       d.Fonts,
		logger:      d.Logger,
	}
}

type errorBody struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a size-capped JSON body into v. It writes the 400
// response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// parseID reads a UUID path parameter value.
func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id.")
		return uuid.Nil, false
	}
	return id, true
}

// fail maps a domain error to a response. Unknown errors are logged and
// answered with a generic 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, planner.ErrEmptyContent):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, transcript.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, transcript.ErrTranscriptUnavailable):
		a.logger.Warn("transcript unavailable", "error", err)
		writeError(w, http.StatusBadGateway, "No transcript could be retrieved for this video.")
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "Draft not found or expired.")
	case errors.Is(err, assembler.ErrNoHTMLRenderer):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "The request timed out.")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		a.logger.Error("api request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
