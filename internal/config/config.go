// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct shared by the server
// and the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"carouselpress/internal/ai"
	"carouselpress/internal/storage"
)

// DefaultModels is the model fallback order used when AI_MODELS is unset.
const DefaultModels = "gemini-3-pro-preview,gemini-2.5-pro,gemini-2.5-flash"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection. Run history is disabled when DBHost is empty.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey. Drafts and the plan cache are disabled when ValkeyHost is empty.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int
	PlanCacheTTL   time.Duration
	DraftTTL       time.Duration

	// AI provider settings
	AIProvider     string
	AIModels       []string
	AITimeout      time.Duration
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiKey      string
	GeminiModel    string
	GeminiBaseURL  string
	ClaudeKey      string
	ClaudeModel    string
	ClaudeBaseURL  string
	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	// S3-compatible artifact storage. OUTPUT_DIR is used when S3Bucket is empty.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Rendering
	OutputDir string
	FontDir   string
	// AssetDir is the only directory API requests may name logos and
	// background images from. Empty disables file assets over the API.
	AssetDir     string
	RenderSize   int
	ExportFormat string
	JPEGQuality  int
	SlideCount   int
	BrandName    string
	AuthorHandle string

	// Limits and tooling
	APITokenHash       string
	RateLimitPerMinute int
	YTDLPPath          string
	MaxInputChars      int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a numeric value does not parse.
func Load() (*Config, error) {
	var p parser
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "carouselpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "carouselpress"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyDB:       p.int("VALKEY_DB", 0),
		PlanCacheTTL:   p.duration("PLAN_CACHE_TTL", 24*time.Hour),
		DraftTTL:       p.duration("DRAFT_TTL", 24*time.Hour),

		AIProvider:     envOrDefault("AI_PROVIDER", "gemini"),
		AIModels:       listOrDefault("AI_MODELS", DefaultModels),
		AITimeout:      p.duration("AI_TIMEOUT", ai.DefaultTimeout),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:  envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:    envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL:  envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		OutputDir:    envOrDefault("OUTPUT_DIR", "output"),
		FontDir:      os.Getenv("FONT_DIR"),
		AssetDir:     os.Getenv("ASSET_DIR"),
		RenderSize:   p.int("RENDER_SIZE", 1080),
		ExportFormat: envOrDefault("EXPORT_FORMAT", "png"),
		JPEGQuality:  p.int("JPEG_QUALITY", 92),
		SlideCount:   p.int("SLIDE_COUNT", 5),
		BrandName:    envOrDefault("BRAND_NAME", "Metamorphosis"),
		AuthorHandle: envOrDefault("AUTHOR_HANDLE", "@metamorphosis"),

		APITokenHash:       os.Getenv("API_TOKEN_HASH"),
		RateLimitPerMinute: p.int("RATE_LIMIT_PER_MINUTE", 10),
		YTDLPPath:          envOrDefault("YTDLP_PATH", "yt-dlp"),
		MaxInputChars:      p.int("MAX_INPUT_CHARS", 12000),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.RenderSize < 270 || cfg.RenderSize > 4320 {
		return nil, fmt.Errorf("RENDER_SIZE must be between 270 and 4320, got %d", cfg.RenderSize)
	}

	if cfg.Env == "production" {
		if cfg.DBHost != "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.APITokenHash == "" {
			return nil, fmt.Errorf("API_TOKEN_HASH must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HasDatabase reports whether run history should be persisted.
func (c *Config) HasDatabase() bool { return c.DBHost != "" }

// HasValkey reports whether drafts and the plan cache are available.
func (c *Config) HasValkey() bool { return c.ValkeyHost != "" }

// ProviderConfigs returns the per-provider settings for ai.NewRegistry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"openai":  {APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL, Timeout: c.AITimeout},
		"gemini":  {APIKey: c.GeminiKey, Model: c.GeminiModel, BaseURL: c.GeminiBaseURL, Timeout: c.AITimeout},
		"claude":  {APIKey: c.ClaudeKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL, Timeout: c.AITimeout},
		"mistral": {APIKey: c.MistralKey, Model: c.MistralModel, BaseURL: c.MistralBaseURL, Timeout: c.AITimeout},
	}
}

// Storage returns the S3 settings for storage.New.
func (c *Config) Storage() storage.Config {
	return storage.Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Bucket:    c.S3Bucket,
		PublicURL: c.S3PublicURL,
	}
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// listOrDefault splits a comma-separated variable, dropping blank entries.
func listOrDefault(key, fallback string) []string {
	var out []string
	for _, s := range strings.Split(envOrDefault(key, fallback), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parser keeps the first numeric parse error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %q is not an integer", key, v)
	}
	if err != nil {
		return fallback
	}
	return n
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %q is not a duration", key, v)
	}
	if err != nil {
		return fallback
	}
	return d
}
