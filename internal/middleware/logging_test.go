// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// captureLog routes the default slog logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// lastRecord decodes the final JSON log line.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &rec); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return rec
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		body      string
		wantLevel string
	}{
		{"carousel created", http.MethodPost, "/api/carousels", http.StatusCreated, `{"id":"x"}`, "INFO"},
		{"draft missing", http.MethodGet, "/api/drafts/abc", http.StatusNotFound, `{"error":"Draft not found."}`, "INFO"},
		{"nothing rendered", http.MethodPost, "/api/drafts/abc/render", http.StatusInternalServerError, `{"error":"no slides"}`, "ERROR"},
		{"implicit 200", http.MethodGet, "/api/options", 0, `{}`, "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			})
			handler := chimw.RequestID(Logger(inner))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			if rr.Code != want {
				t.Errorf("status: got %d, want %d", rr.Code, want)
			}

			rec := lastRecord(t, buf)
			if rec["msg"] != "http request" || rec["level"] != tt.wantLevel {
				t.Errorf("record msg=%v level=%v, want %q at %s", rec["msg"], rec["level"], "http request", tt.wantLevel)
			}
			if rec["method"] != tt.method || rec["path"] != tt.path {
				t.Errorf("record method=%v path=%v", rec["method"], rec["path"])
			}
			if got, _ := rec["status"].(float64); int(got) != want {
				t.Errorf("logged status = %v, want %d", rec["status"], want)
			}
			if got, _ := rec["bytes"].(float64); int(got) != len(tt.body) {
				t.Errorf("logged bytes = %v, want %d", rec["bytes"], len(tt.body))
			}
			if id, _ := rec["request_id"].(string); id == "" {
				t.Error("request_id missing from log record")
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(rw *responseWriter)
		wantStatus int
		wantBytes  int
	}{
		{
			"first WriteHeader wins",
			func(rw *responseWriter) {
				rw.WriteHeader(http.StatusNotFound)
				rw.WriteHeader(http.StatusInternalServerError)
			},
			http.StatusNotFound, 0,
		},
		{
			"write implies 200",
			func(rw *responseWriter) { rw.Write([]byte("slide")) },
			http.StatusOK, 5,
		},
		{
			"explicit status kept across writes",
			func(rw *responseWriter) {
				rw.WriteHeader(http.StatusCreated)
				rw.Write([]byte("hello"))
				rw.Write([]byte(" world"))
			},
			http.StatusCreated, 11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
			tt.write(rw)
			if !rw.written {
				t.Error("written should be true")
			}
			if rw.statusCode != tt.wantStatus {
				t.Errorf("statusCode = %d, want %d", rw.statusCode, tt.wantStatus)
			}
			if rw.bytes != tt.wantBytes {
				t.Errorf("bytes = %d, want %d", rw.bytes, tt.wantBytes)
			}
		})
	}
}
