// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

var allVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "VALKEY_DB", "PLAN_CACHE_TTL", "DRAFT_TTL",
	"AI_PROVIDER", "AI_MODELS", "AI_TIMEOUT",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
	"CLAUDE_API_KEY", "CLAUDE_MODEL", "CLAUDE_BASE_URL",
	"MISTRAL_API_KEY", "MISTRAL_MODEL", "MISTRAL_BASE_URL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	"OUTPUT_DIR", "FONT_DIR", "ASSET_DIR", "RENDER_SIZE", "EXPORT_FORMAT", "JPEG_QUALITY", "SLIDE_COUNT",
	"BRAND_NAME", "AUTHOR_HANDLE",
	"API_TOKEN_HASH", "RATE_LIMIT_PER_MINUTE", "YTDLP_PATH", "MAX_INPUT_CHARS",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "")
	check("DBUser", cfg.DBUser, "carouselpress")
	check("ValkeyHost", cfg.ValkeyHost, "")
	check("AIProvider", cfg.AIProvider, "gemini")
	check("GeminiModel", cfg.GeminiModel, "gemini-2.5-flash")
	check("OutputDir", cfg.OutputDir, "output")
	check("ExportFormat", cfg.ExportFormat, "png")
	check("YTDLPPath", cfg.YTDLPPath, "yt-dlp")
	check("BrandName", cfg.BrandName, "Metamorphosis")

	if got := strings.Join(cfg.AIModels, ","); got != DefaultModels {
		t.Errorf("AIModels = %q", got)
	}
	if cfg.RenderSize != 1080 || cfg.SlideCount != 5 || cfg.RateLimitPerMinute != 10 {
		t.Errorf("numeric defaults = %d, %d, %d", cfg.RenderSize, cfg.SlideCount, cfg.RateLimitPerMinute)
	}
	if cfg.PlanCacheTTL != 24*time.Hour {
		t.Errorf("PlanCacheTTL = %v", cfg.PlanCacheTTL)
	}
	if cfg.HasDatabase() || cfg.HasValkey() {
		t.Error("optional backends should be disabled by default")
	}
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
}

// TestLoad_EnvOverrides verifies that environment variables override the
// defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	overrides := map[string]string{
		"APP_PORT":              "9090",
		"POSTGRES_HOST":         "db.example.com",
		"VALKEY_HOST":           "cache.example.com",
		"VALKEY_DB":             "3",
		"DRAFT_TTL":             "2h",
		"AI_MODELS":             " claude-sonnet-4-6 , ,gpt-4o ",
		"CLAUDE_API_KEY":        "claude-test-key",
		"S3_BUCKET":             "carousels",
		"S3_PUBLIC_URL":         "https://cdn.example.com",
		"RENDER_SIZE":           "2160",
		"RATE_LIMIT_PER_MINUTE": "30",
		"API_TOKEN_HASH":        "$2a$10$abc",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.ValkeyDB != 3 || cfg.DraftTTL != 2*time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := strings.Join(cfg.AIModels, "|"); got != "claude-sonnet-4-6|gpt-4o" {
		t.Errorf("AIModels = %q", got)
	}
	if !cfg.HasDatabase() || !cfg.HasValkey() {
		t.Error("backends should be enabled")
	}
	if cfg.RenderSize != 2160 || cfg.RateLimitPerMinute != 30 {
		t.Errorf("RenderSize = %d, RateLimit = %d", cfg.RenderSize, cfg.RateLimitPerMinute)
	}

	pc := cfg.ProviderConfigs()
	if pc["claude"].APIKey != "claude-test-key" || pc["claude"].Model != "claude-sonnet-4-6" {
		t.Errorf("claude config = %+v", pc["claude"])
	}
	if pc["gemini"].APIKey != "" {
		t.Error("gemini should have no key")
	}

	st := cfg.Storage()
	if st.Bucket != "carousels" || st.PublicURL != "https://cdn.example.com" {
		t.Errorf("storage = %+v", st)
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := map[string]string{
		"RENDER_SIZE":    "big",
		"PLAN_CACHE_TTL": "forever",
		"VALKEY_DB":      "1.5",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Errorf("err = %v, want mention of %s", err, key)
			}
		})
	}
}

func TestLoad_RenderSizeBounds(t *testing.T) {
	for _, v := range []string{"100", "9000"} {
		clearEnv(t)
		t.Setenv("RENDER_SIZE", v)
		if _, err := Load(); err == nil {
			t.Errorf("RENDER_SIZE=%s accepted", v)
		}
	}
}

// TestLoad_Production verifies the production checks.
func TestLoad_Production(t *testing.T) {
	t.Run("rejects default password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("API_TOKEN_HASH", "$2a$10$abc")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("requires token hash", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "API_TOKEN_HASH") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("accepts complete config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("POSTGRES_PASSWORD", "s3cret")
		t.Setenv("API_TOKEN_HASH", "$2a$10$abc")
		if _, err := Load(); err != nil {
			t.Errorf("Load: %v", err)
		}
	})
}

func TestDSNAndAddr(t *testing.T) {
	cfg := &Config{Host: "127.0.0.1", Port: "8080", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d"}
	if got := cfg.DSN(); got != "postgres://u:p@h:5432/d?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr = %q", got)
	}
}
