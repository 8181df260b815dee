// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// carousel service. Routes are split into the public health check, the
// token-protected JSON API and the static artifact tree.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"carouselpress/internal/handlers"
	"carouselpress/internal/middleware"
)

// ArtifactsPath is the URL prefix local artifacts are served under. The
// directory sink is configured with the same prefix as its BaseURL.
const ArtifactsPath = "/artifacts"

// Options configures New.
type Options struct {
	// TokenHash is the bcrypt hash of the API bearer token. Empty leaves
	// the API open.
	TokenHash string
	// Limiter throttles the endpoints that call models or render. Nil
	// disables throttling.
	Limiter *middleware.RateLimiter
	// ArtifactDir is served read-only under ArtifactsPath when set.
	ArtifactDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SecureHeaders)
		r.Use(middleware.RequireToken(opts.TokenHash))

		// Cheap reads.
		r.Get("/options", api.Options)
		r.Get("/layouts/preview", api.LayoutPreview)
		r.Get("/drafts/{id}", api.GetDraft)
		r.Put("/drafts/{id}", api.UpdateDraft)
		r.Delete("/drafts/{id}", api.DeleteDraft)
		r.Get("/runs", api.ListRuns)
		r.Get("/runs/{id}", api.GetRun)

		// Model calls, transcript downloads and rendering.
		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(opts.Limiter.Middleware)
			}
			r.Post("/transcripts", api.Transcript)
			r.Post("/plans", api.CreatePlan)
			r.Post("/drafts/{id}/render", api.RenderDraft)
			r.Post("/carousels", api.CreateCarousel)
		})
	})

	if opts.ArtifactDir != "" {
		files := http.StripPrefix(ArtifactsPath+"/", http.FileServer(noListing{http.Dir(opts.ArtifactDir)}))
		r.Handle(ArtifactsPath+"/*", files)
	}

	return r
}

// noListing hides directory indexes so run IDs cannot be enumerated.
type noListing struct{ fs http.FileSystem }

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
