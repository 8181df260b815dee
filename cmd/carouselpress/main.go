// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the carousel API server. It loads
// configuration, connects to the optional backing services, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carouselpress/internal/ai"
	"carouselpress/internal/artifact"
	"carouselpress/internal/assembler"
	"carouselpress/internal/cache"
	"carouselpress/internal/config"
	"carouselpress/internal/database"
	"carouselpress/internal/handlers"
	"carouselpress/internal/middleware"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
	"carouselpress/internal/render"
	"carouselpress/internal/renderer"
	"carouselpress/internal/router"
	"carouselpress/internal/session"
	"carouselpress/internal/storage"
	"carouselpress/internal/store"
	"carouselpress/internal/transcript"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"database", cfg.HasDatabase(),
		"valkey", cfg.HasValkey(),
		"s3", cfg.S3Bucket != "",
	)

	ctx := context.Background()
	deps := handlers.Deps{Logger: logger}
	var asmOpts []assembler.Option
	asmOpts = append(asmOpts, assembler.WithLogger(logger))

	// Run history in PostgreSQL (optional).
	if cfg.HasDatabase() {
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		runs := store.NewRunStore(db)
		deps.Runs = runs
		asmOpts = append(asmOpts, assembler.WithRuns(runs))
	} else {
		slog.Warn("postgres not configured, run history disabled")
	}

	// AI variants in preference order; the planner falls back to the
	// heuristic when none are configured or all fail.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	variants := aiRegistry.Variants(cfg.AIModels)
	gens := make([]planner.Generator, len(variants))
	for i, v := range variants {
		gens[i] = v
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
		"variants", len(variants),
	)

	plannerOpts := []planner.Option{
		planner.WithGenerators(gens...),
		planner.WithSlideCount(cfg.SlideCount),
		planner.WithMaxInput(cfg.MaxInputChars),
		planner.WithLogger(logger),
	}

	// Valkey backs the plan cache and review drafts (optional).
	if cfg.HasValkey() {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		plannerOpts = append(plannerOpts, planner.WithCache(cache.NewPlanCache(valkeyClient, cfg.PlanCacheTTL)))
		deps.Drafts = session.NewStore(valkeyClient, cfg.DraftTTL)
	} else {
		slog.Warn("valkey not configured, plan cache and drafts disabled")
	}

	format, err := models.ParseExportFormat(cfg.ExportFormat)
	if err != nil {
		slog.Error("invalid export format", "error", err)
		os.Exit(1)
	}
	rast, err := renderer.New(renderer.Options{
		Size:        cfg.RenderSize,
		FontDir:     cfg.FontDir,
		Format:      format,
		JPEGQuality: cfg.JPEGQuality,
		Logger:      logger,
	})
	if err != nil {
		slog.Error("failed to initialize slide renderer", "error", err)
		os.Exit(1)
	}
	html, err := render.New()
	if err != nil {
		slog.Error("failed to initialize html renderer", "error", err)
		os.Exit(1)
	}
	// No browser capturer is bundled, so the HTML target stores the
	// document only.
	asmOpts = append(asmOpts, assembler.WithHTML(html, nil))

	// Artifacts go to S3 when a bucket is configured, else to OUTPUT_DIR
	// served under /artifacts.
	var sink artifact.Sink
	artifactDir := ""
	if cfg.S3Bucket != "" {
		client, err := storage.New(cfg.Storage())
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		sink = &artifact.S3Sink{Store: client, Prefix: "carousels"}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", client.Bucket())
	} else {
		dir, err := artifact.NewDirSink(cfg.OutputDir)
		if err != nil {
			slog.Error("failed to prepare output directory", "error", err)
			os.Exit(1)
		}
		dir.BaseURL = router.ArtifactsPath
		sink = dir
		artifactDir = cfg.OutputDir
	}

	deps.Assembler = assembler.New(planner.New(plannerOpts...), rast, sink, asmOpts...)
	deps.Transcripts = transcript.NewFetcher(logger,
		transcript.NewCaptionSource(nil),
		transcript.NewYTDLPSource(cfg.YTDLPPath),
	)
	deps.AssetDir = cfg.AssetDir
	deps.Fonts = rast.Fonts().Families()
	deps.Style = models.DefaultStyle()
	if cfg.BrandName != "" {
		deps.Style.BrandName = cfg.BrandName
	}
	if cfg.AuthorHandle != "" {
		deps.Style.AuthorHandle = cfg.AuthorHandle
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(deps), router.Options{
		TokenHash:   cfg.APITokenHash,
		Limiter:     limiter,
		ArtifactDir: artifactDir,
	})

	// WriteTimeout must cover the full model fallback chain plus rendering.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3*cfg.AITimeout + 60*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
