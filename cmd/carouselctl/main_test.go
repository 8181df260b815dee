// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const story = `Acme Corp struggled with slow onboarding that took weeks.
We rebuilt their workflow with automated checklists and a shared dashboard.
The result was 45% higher engagement and 3x faster onboarding.`

// cleanEnv keeps the developer's environment from reaching config.Load.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"APP_ENV", "VALKEY_HOST", "POSTGRES_HOST", "RENDER_SIZE", "EXPORT_FORMAT", "FONT_DIR", "SLIDE_COUNT"} {
		t.Setenv(k, "")
	}
}

func TestRunTextFile(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "Acme Story.txt")
	if err := os.WriteFile(src, []byte(story), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-no-ai", "-text-file", src, "-out", out, "-size", "270", "-seed", "4", "-scheme", "Corporate Navy",
	}, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !strings.HasSuffix(lines[0], "slide_1.png") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[len(lines)-1], "carousel.zip") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, filepath.Join(out, "acme-story")) {
			t.Errorf("%q is not under the slugged output dir", l)
		}
		if _, err := os.Stat(l); err != nil {
			t.Errorf("missing artifact: %v", err)
		}
	}
	if !strings.Contains(stderr.String(), "seed 4") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunStdinHTML(t *testing.T) {
	cleanEnv(t)
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-no-ai", "-text-file", "-", "-out", out, "-target", "html"},
		strings.NewReader(story), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	got := strings.TrimSpace(stdout.String())
	if !strings.HasSuffix(got, "carousel.html") {
		t.Errorf("stdout = %q", got)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`id="slide-1"`)) {
		t.Error("document has no slide anchors")
	}
}

func TestRunMissingLogoWarns(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "story.md")
	if err := os.WriteFile(src, []byte(story), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-no-ai", "-text-file", src, "-out", dir, "-size", "270", "-logo", filepath.Join(dir, "nope.png"),
	}, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), "warning:") {
		t.Errorf("expected a logo warning, stderr = %q", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "story.txt")
	if err := os.WriteFile(src, []byte(story), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", []string{"-no-ai"}, "-text-file or -url"},
		{"missing file", []string{"-no-ai", "-text-file", filepath.Join(dir, "missing.txt")}, "missing.txt"},
		{"unknown scheme", []string{"-no-ai", "-text-file", src, "-scheme", "Neon"}, "unknown color scheme"},
		{"unknown archetype", []string{"-no-ai", "-text-file", src, "-archetype", "limerick"}, "unknown archetype"},
		{"unknown target", []string{"-no-ai", "-text-file", src, "-target", "pdf"}, "unknown render target"},
		{"bad format", []string{"-no-ai", "-text-file", src, "-format", "bmp"}, "unsupported export format"},
		{"flush without valkey", []string{"-flush-cache"}, "VALKEY_HOST"},
		{"stray args", []string{"-no-ai", "-text-file", src, "extra"}, "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), append(tt.args, "-out", dir), nil, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
