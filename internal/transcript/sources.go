// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultCaptionURL is YouTube's timed text endpoint.
	DefaultCaptionURL = "https://www.youtube.com/api/timedtext"

	// maxCaptionBytes caps a caption download.
	maxCaptionBytes = 8 << 20

	// DefaultYTDLPTimeout bounds one yt-dlp run.
	DefaultYTDLPTimeout = 2 * time.Minute
)

// CaptionSource downloads a WebVTT caption track over HTTP.
type CaptionSource struct {
	Client  *http.Client
	BaseURL string
	// Languages are tried in order. Defaults to English.
	Languages []string
}

// NewCaptionSource returns a CaptionSource for the timed text endpoint.
func NewCaptionSource(client *http.Client) *CaptionSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CaptionSource{Client: client, BaseURL: DefaultCaptionURL, Languages: []string{"en"}}
}

// Name implements Source.
func (c *CaptionSource) Name() string { return "captions" }

// Fetch implements Source. Manual tracks are preferred over automatic
// ones for each language.
func (c *CaptionSource) Fetch(ctx context.Context, videoID string) (string, error) {
	langs := c.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	var lastErr error
	for _, lang := range langs {
		for _, kind := range []string{"", "asr"} {
			text, err := c.fetchTrack(ctx, videoID, lang, kind)
			if err == nil && text != "" {
				return text, nil
			}
			if err != nil {
				lastErr = err
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no caption track for %s", videoID)
	}
	return "", lastErr
}

func (c *CaptionSource) fetchTrack(ctx context.Context, videoID, lang, kind string) (string, error) {
	q := url.Values{"v": {videoID}, "lang": {lang}, "fmt": {"vtt"}}
	if kind != "" {
		q.Set("kind", kind)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("captions request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("captions http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captions status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return "", fmt.Errorf("captions read: %w", err)
	}
	return CleanVTT(string(body)), nil
}

// Runner executes an external command. exec.CommandContext backs the
// default.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// YTDLPSource downloads automatic subtitles with yt-dlp.
type YTDLPSource struct {
	Path     string
	Language string
	Timeout  time.Duration
	Run      Runner
}

// NewYTDLPSource returns a YTDLPSource using the binary at path, or
// "yt-dlp" from PATH when path is empty.
func NewYTDLPSource(path string) *YTDLPSource {
	if path == "" {
		path = "yt-dlp"
	}
	return &YTDLPSource{Path: path, Language: "en", Timeout: DefaultYTDLPTimeout, Run: execRunner}
}

// Name implements Source.
func (y *YTDLPSource) Name() string { return "yt-dlp" }

// Fetch implements Source.
func (y *YTDLPSource) Fetch(ctx context.Context, videoID string) (string, error) {
	dir, err := os.MkdirTemp("", "carousel-subs-")
	if err != nil {
		return "", fmt.Errorf("yt-dlp temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	timeout := y.Timeout
	if timeout <= 0 {
		timeout = DefaultYTDLPTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lang := y.Language
	if lang == "" {
		lang = "en"
	}
	run := y.Run
	if run == nil {
		run = execRunner
	}

	args := []string{
		"--write-sub", "--write-auto-sub",
		"--sub-lang", lang,
		"--sub-format", "vtt",
		"--skip-download",
		"--no-playlist",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		"https://www.youtube.com/watch?v=" + videoID,
	}
	if out, err := run(ctx, y.Path, args...); err != nil {
		msg := strings.TrimSpace(string(out))
		if len(msg) > 512 {
			msg = msg[len(msg)-512:]
		}
		return "", fmt.Errorf("yt-dlp: %w: %s", err, msg)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("yt-dlp wrote no subtitles for %s", videoID)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", fmt.Errorf("yt-dlp read subtitles: %w", err)
	}
	return CleanVTT(string(data)), nil
}
