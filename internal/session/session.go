// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session keeps review drafts in Valkey. A draft is a planned
// carousel waiting for the user to edit its slides or style before it is
// rendered. Drafts are stored as JSON with automatic TTL expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"carouselpress/internal/models"
)

const (
	// DefaultTTL is how long an untouched draft lives in Valkey.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces draft keys in Valkey to avoid collisions.
	keyPrefix = "draft:"
)

// ErrNotFound is returned for unknown or expired drafts.
var ErrNotFound = errors.New("draft not found")

// Draft is a planned carousel under review.
type Draft struct {
	ID        uuid.UUID          `json:"id"`
	Archetype models.Archetype   `json:"archetype"`
	Seed      int                `json:"seed"`
	Style     models.StyleConfig `json:"style"`
	Slides    []models.Slide     `json:"slides"`
	Source    string             `json:"source"`
	Model     string             `json:"model,omitempty"`
	// Warning is the planning warning message, if any.
	Warning   string    `json:"warning,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store manages draft lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a draft store backed by the given Valkey client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Create assigns an ID and timestamps and stores the draft.
func (s *Store) Create(ctx context.Context, d *Draft) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	if err := s.put(ctx, d); err != nil {
		return fmt.Errorf("draft create: %w", err)
	}
	return nil
}

// Get loads a draft. It returns ErrNotFound when the draft has expired or
// never existed.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft get: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("draft unmarshal: %w", err)
	}
	return &d, nil
}

// Update replaces an existing draft and resets its TTL. The draft must
// still exist.
func (s *Store) Update(ctx context.Context, d *Draft) error {
	n, err := s.client.Exists(ctx, keyPrefix+d.ID.String()).Result()
	if err != nil {
		return fmt.Errorf("draft update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	d.UpdatedAt = time.Now().UTC()
	if err := s.put(ctx, d); err != nil {
		return fmt.Errorf("draft update: %w", err)
	}
	return nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, d *Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+d.ID.String(), payload, s.ttl).Err()
}
