// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package transcript turns a YouTube URL into plain source text for the
// planner. Caption tracks are tried over HTTP first and yt-dlp second; the
// first source that yields text wins.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"carouselpress/internal/strategy"
)

var (
	// ErrInvalidURL is returned when no video ID can be found in a URL.
	ErrInvalidURL = errors.New("not a recognised YouTube URL")

	// ErrTranscriptUnavailable wraps the failures of every source.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

// VideoID extracts the video ID from the youtu.be, watch, embed and /v/
// URL forms.
func VideoID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	var id string
	switch strings.ToLower(u.Hostname()) {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "www.youtube.com", "m.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = segment(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/v/"):
			id = segment(u.Path, "/v/")
		}
	}

	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return id, nil
}

func segment(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Source fetches the transcript of one video.
type Source interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Transcript is a fetched transcript.
type Transcript struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
	Source  string `json:"source"`
}

// Fetcher tries its sources in order.
type Fetcher struct {
	sources []Source
	logger  *slog.Logger
}

// NewFetcher builds a Fetcher over the given sources.
func NewFetcher(logger *slog.Logger, sources ...Source) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{sources: sources, logger: logger}
}

// Fetch resolves the video ID and returns the first non-empty transcript.
// When every source fails the error wraps ErrTranscriptUnavailable and the
// per-source *strategy.ExhaustedError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Transcript, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return nil, err
	}

	attempts := make([]strategy.Strategy[string], len(f.sources))
	for i, src := range f.sources {
		attempts[i] = strategy.Func[string]{
			Label: src.Name(),
			Fn: func(ctx context.Context) (string, error) {
				text, err := src.Fetch(ctx, id)
				if err != nil {
					return "", err
				}
				if strings.TrimSpace(text) == "" {
					return "", errors.New("empty transcript")
				}
				return text, nil
			},
		}
	}

	text, name, err := strategy.First(ctx, attempts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrTranscriptUnavailable, err)
	}

	f.logger.Info("transcript fetched", "video_id", id, "source", name, "chars", len(text))
	return &Transcript{VideoID: id, Text: text, Source: name}, nil
}
