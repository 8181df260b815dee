// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the hosted LLM providers
// (Gemini, OpenAI, Claude, Mistral) used to structure slide content. The
// Registry resolves an ordered list of model variants that the planner
// tries one after another.
package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// Provider is implemented by every LLM backend.
type Provider interface {
	// Name returns the provider identifier ("gemini", "openai", ...).
	Name() string

	// GenerateWithModel sends the prompts to the named model. An empty
	// model selects the provider's configured default.
	GenerateWithModel(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Registry holds the configured providers and the active one. All methods
// are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a provider for every config with a non-empty API key.
// Unknown provider names are ignored.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = DefaultTimeout
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}
	return r
}

// Register adds or replaces a provider. Tests use it to inject fakes.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Available returns the configured provider names, sorted.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProvider reports whether the named provider is configured.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// Variant is one (provider, model) pair in the fallback order.
type Variant struct {
	Provider Provider
	Model    string
}

// Name returns "provider/model", or just the provider when the default
// model is used.
func (v Variant) Name() string {
	if v.Model == "" {
		return v.Provider.Name()
	}
	return v.Provider.Name() + "/" + v.Model
}

// Generate calls the variant's model.
func (v Variant) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return v.Provider.GenerateWithModel(ctx, v.Model, systemPrompt, userPrompt)
}

// Variants resolves an ordered model preference list into callable
// variants. Each entry is "provider:model", "provider" or a bare model
// name whose provider is inferred from its prefix ("gemini-2.5-pro") or
// else taken to be the active provider. Entries whose provider is not
// configured are skipped. When nothing resolves, the active provider's
// default model is used, if any.
func (r *Registry) Variants(models []string) []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Variant
	seen := make(map[string]bool)
	add := func(providerName, model string) {
		p, ok := r.providers[providerName]
		if !ok {
			return
		}
		v := Variant{Provider: p, Model: model}
		if seen[v.Name()] {
			return
		}
		seen[v.Name()] = true
		out = append(out, v)
	}

	for _, entry := range models {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prov, model, ok := strings.Cut(entry, ":"); ok {
			add(strings.ToLower(prov), model)
			continue
		}
		if _, ok := r.providers[strings.ToLower(entry)]; ok {
			add(strings.ToLower(entry), "")
			continue
		}
		if prov := inferProvider(entry); prov != "" {
			add(prov, entry)
			continue
		}
		add(r.active, entry)
	}

	if len(out) == 0 {
		add(r.active, "")
	}
	return out
}

// inferProvider maps well-known model name prefixes to their provider.
func inferProvider(model string) string {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	case strings.HasPrefix(m, "claude"):
		return "claude"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return "openai"
	case strings.HasPrefix(m, "mistral"), strings.HasPrefix(m, "ministral"), strings.HasPrefix(m, "magistral"):
		return "mistral"
	}
	return ""
}
