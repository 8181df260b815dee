// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command carouselctl builds one carousel from a text file or a video URL
// and writes the slide images and zip bundle to a local directory.
//
//	carouselctl -text-file story.md -archetype tips -scheme "Startup Orange"
//	carouselctl -url https://youtu.be/<id> -out ./output -size 2160
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"carouselpress/internal/ai"
	"carouselpress/internal/artifact"
	"carouselpress/internal/assembler"
	"carouselpress/internal/cache"
	"carouselpress/internal/config"
	"carouselpress/internal/models"
	"carouselpress/internal/planner"
	"carouselpress/internal/render"
	"carouselpress/internal/renderer"
	"carouselpress/internal/slug"
	"carouselpress/internal/transcript"
)

// maxDirName caps the slug used for the per-input output directory.
const maxDirName = 48

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "carouselctl:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	textFile   string
	url        string
	archetype  string
	seed       int
	out        string
	scheme     string
	font       string
	logo       string
	bgMode     string
	bgImage    string
	link       string
	brand      string
	handle     string
	size       int
	format     string
	target     string
	noProgress bool
	noAI       bool
	flushCache bool
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("carouselctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.textFile, "text-file", "", "source text file, or - for stdin")
	fs.StringVar(&o.url, "url", "", "YouTube URL to fetch a transcript from")
	fs.StringVar(&o.archetype, "archetype", "success-story", "success-story, tutorial, tips or data-insight")
	fs.IntVar(&o.seed, "seed", -1, "layout seed; negative picks one at random")
	fs.StringVar(&o.out, "out", "", "output directory (default OUTPUT_DIR)")
	fs.StringVar(&o.scheme, "scheme", "", "named color scheme, e.g. \"Corporate Navy\"")
	fs.StringVar(&o.font, "font", "", "font family")
	fs.StringVar(&o.logo, "logo", "", "logo image path")
	fs.StringVar(&o.bgMode, "bg-mode", "", "gradient, solid, pattern or image")
	fs.StringVar(&o.bgImage, "bg-image", "", "background image path for -bg-mode image")
	fs.StringVar(&o.link, "link", "", "URL encoded as a QR code on the last slide")
	fs.StringVar(&o.brand, "brand", "", "brand name (default BRAND_NAME)")
	fs.StringVar(&o.handle, "handle", "", "author handle (default AUTHOR_HANDLE)")
	fs.IntVar(&o.size, "size", 0, "canvas edge in pixels (default RENDER_SIZE)")
	fs.StringVar(&o.format, "format", "", "png or jpeg (default EXPORT_FORMAT)")
	fs.StringVar(&o.target, "target", "raster", "raster or html")
	fs.BoolVar(&o.noProgress, "no-progress", false, "hide the progress bar")
	fs.BoolVar(&o.noAI, "no-ai", false, "skip model providers and plan heuristically")
	fs.BoolVar(&o.flushCache, "flush-cache", false, "drop every cached plan in Valkey and exit")
	fs.BoolVar(&o.verbose, "v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if !o.flushCache && o.textFile == "" && o.url == "" {
		fs.Usage()
		return o, errors.New("one of -text-file or -url is required")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	plannerOpts := []planner.Option{
		planner.WithSlideCount(cfg.SlideCount),
		planner.WithMaxInput(cfg.MaxInputChars),
		planner.WithLogger(logger),
	}
	if cfg.HasValkey() && (o.flushCache || !o.noAI) {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			return fmt.Errorf("connect valkey: %w", err)
		}
		defer client.Close()
		pc := cache.NewPlanCache(client, cfg.PlanCacheTTL)
		if o.flushCache {
			n, err := pc.Invalidate(ctx)
			if err != nil {
				return fmt.Errorf("flush plan cache: %w", err)
			}
			fmt.Fprintf(stdout, "removed %d cached plans\n", n)
			return nil
		}
		plannerOpts = append(plannerOpts, planner.WithCache(pc))
	} else if o.flushCache {
		return errors.New("-flush-cache needs VALKEY_HOST")
	}
	if !o.noAI {
		variants := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs()).Variants(cfg.AIModels)
		gens := make([]planner.Generator, len(variants))
		for i, v := range variants {
			gens[i] = v
		}
		plannerOpts = append(plannerOpts, planner.WithGenerators(gens...))
	}

	text, name, err := readSource(ctx, o, stdin, logger, cfg.YTDLPPath)
	if err != nil {
		return err
	}

	archetype, err := models.ParseArchetype(o.archetype)
	if err != nil {
		return err
	}
	target, err := assembler.ParseTarget(o.target)
	if err != nil {
		return err
	}
	style, err := buildStyle(o, cfg)
	if err != nil {
		return err
	}
	seed := o.seed
	if seed < 0 {
		seed = rand.IntN(1_000_000)
	}

	formatName := cfg.ExportFormat
	if o.format != "" {
		formatName = o.format
	}
	format, err := models.ParseExportFormat(formatName)
	if err != nil {
		return err
	}
	size := cfg.RenderSize
	if o.size > 0 {
		size = o.size
	}
	rast, err := renderer.New(renderer.Options{
		Size:        size,
		FontDir:     cfg.FontDir,
		Format:      format,
		JPEGQuality: cfg.JPEGQuality,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	html, err := render.New()
	if err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = cfg.OutputDir
	}
	sink, err := artifact.NewDirSink(filepath.Join(out, slug.Name(name, maxDirName)))
	if err != nil {
		return err
	}

	asm := assembler.New(planner.New(plannerOpts...), rast, sink,
		assembler.WithHTML(html, nil),
		assembler.WithLogger(logger),
	)
	res, err := asm.Assemble(ctx, assembler.Request{
		Text:      text,
		Archetype: archetype,
		Style:     style,
		Seed:      seed,
		Target:    target,
	})
	if res != nil {
		for _, w := range res.WarningMessages() {
			fmt.Fprintln(stderr, "warning:", w)
		}
	}
	if err != nil {
		return err
	}

	for _, a := range res.Artifacts {
		fmt.Fprintln(stdout, a.Ref)
	}
	if res.Document != "" {
		fmt.Fprintln(stdout, res.Document)
	}
	if res.Archive != "" {
		fmt.Fprintln(stdout, res.Archive)
	}
	fmt.Fprintf(stderr, "%d/%d slides, planned by %s, seed %d\n", len(res.Artifacts), len(res.Slides), planSource(res), seed)
	return nil
}

// readSource returns the carousel text and a name for the output
// directory.
func readSource(ctx context.Context, o options, stdin io.Reader, logger *slog.Logger, ytdlp string) (string, string, error) {
	switch {
	case o.textFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	case o.textFile != "":
		data, err := os.ReadFile(o.textFile)
		if err != nil {
			return "", "", err
		}
		base := filepath.Base(o.textFile)
		return string(data), strings.TrimSuffix(base, filepath.Ext(base)), nil
	}

	fetcher := transcript.NewFetcher(logger,
		transcript.NewCaptionSource(nil),
		transcript.NewYTDLPSource(ytdlp),
	)
	t, err := fetcher.Fetch(ctx, o.url)
	if err != nil {
		return "", "", err
	}
	return t.Text, t.VideoID, nil
}

func buildStyle(o options, cfg *config.Config) (models.StyleConfig, error) {
	style := models.DefaultStyle()
	style.BrandName = cfg.BrandName
	style.AuthorHandle = cfg.AuthorHandle
	if o.scheme != "" {
		cs, ok := models.FindColorScheme(o.scheme)
		if !ok {
			return style, fmt.Errorf("unknown color scheme %q", o.scheme)
		}
		style = style.WithScheme(cs)
	}
	if o.font != "" {
		style.FontFamily = o.font
	}
	if o.brand != "" {
		style.BrandName = o.brand
	}
	if o.handle != "" {
		style.AuthorHandle = o.handle
	}
	if o.bgMode != "" {
		style.BackgroundMode = models.ParseBackgroundMode(o.bgMode)
	}
	style.LogoPath = o.logo
	style.BackgroundPath = o.bgImage
	style.LinkURL = o.link
	style.ShowProgress = !o.noProgress
	return style.Normalized()
}

func planSource(res *assembler.Result) string {
	if res.Model != "" {
		return res.Source + " (" + res.Model + ")"
	}
	return res.Source
}
