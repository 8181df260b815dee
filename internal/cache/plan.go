// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"carouselpress/internal/planner"
)

const (
	// planKeyPrefix namespaces plan keys in Valkey.
	planKeyPrefix = "plan:"

	// DefaultPlanTTL is how long a model plan stays cached.
	DefaultPlanTTL = 24 * time.Hour
)

// PlanCache stores model-path plans in Valkey as JSON. Every error is
// logged and treated as a miss so a cache outage never fails planning.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a plan cache backed by the given Valkey client.
func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &PlanCache{client: client, ttl: ttl}
}

// GetPlan implements planner.PlanCache.
func (pc *PlanCache) GetPlan(ctx context.Context, key string) (*planner.CachedPlan, bool) {
	val, err := pc.client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("plan cache get error", "error", err)
		return nil, false
	}

	var plan planner.CachedPlan
	if err := json.Unmarshal(val, &plan); err != nil {
		slog.Warn("plan cache entry unreadable, dropping", "error", err)
		pc.client.Del(ctx, planKeyPrefix+key)
		return nil, false
	}
	return &plan, true
}

// SetPlan implements planner.PlanCache.
func (pc *PlanCache) SetPlan(ctx context.Context, key string, plan *planner.CachedPlan) {
	payload, err := json.Marshal(plan)
	if err != nil {
		slog.Warn("plan cache marshal error", "error", err)
		return
	}
	if err := pc.client.Set(ctx, planKeyPrefix+key, payload, pc.ttl).Err(); err != nil {
		slog.Warn("plan cache set error", "error", err)
	}
}

// Invalidate removes every cached plan. Used when the model list or the
// prompts change.
func (pc *PlanCache) Invalidate(ctx context.Context) (int, error) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := pc.client.Scan(ctx, cursor, planKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("plan cache cleared", "deleted", deleted)
	}
	return deleted, nil
}

var _ planner.PlanCache = (*PlanCache)(nil)
