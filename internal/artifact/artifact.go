// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package artifact stores the files produced by one carousel run: the
// slide images, the optional HTML document and the zip bundle.
package artifact

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveName is the file name of the bundle written for every run.
const ArchiveName = "carousel.zip"

// File is one named artifact held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Sink persists artifacts and returns a reference a caller can use to
// fetch them: a file path for DirSink, a URL for S3Sink.
type Sink interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// DirSink writes artifacts under a local directory.
type DirSink struct {
	Root string
	// BaseURL, when set, makes Put return BaseURL/key instead of the file
	// path. The server sets it to the route that serves Root.
	BaseURL string
}

// NewDirSink creates root if needed.
func NewDirSink(root string) (*DirSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirSink{Root: root}, nil
}

// Put writes data to Root/key and returns the file path, or its URL when
// BaseURL is set.
func (d *DirSink) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	p := filepath.Join(d.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", rel, err)
	}
	if d.BaseURL != "" {
		return strings.TrimRight(d.BaseURL, "/") + "/" + rel, nil
	}
	return p, nil
}

// ObjectStore is the part of storage.Client used by S3Sink.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	URL(ctx context.Context, key string) (string, error)
}

// S3Sink uploads artifacts to object storage under Prefix.
type S3Sink struct {
	Store  ObjectStore
	Prefix string
}

// Put uploads data and returns its public or presigned URL.
func (s *S3Sink) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	full := rel
	if p := strings.Trim(s.Prefix, "/"); p != "" {
		full = p + "/" + rel
	}
	if err := s.Store.Upload(ctx, full, contentType, data); err != nil {
		return "", err
	}
	return s.Store.URL(ctx, full)
}

// cleanKey rejects keys that would escape the sink root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return k, nil
}

// Zip bundles files in the given order under their names. Entry times are
// fixed so the same files always produce the same archive.
func Zip(files []File, modTime time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate archive entry %q", f.Name)
		}
		seen[f.Name] = true

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
