// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"carouselpress/internal/models"
	"carouselpress/internal/planner"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, planKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(context.Background(), host, port, os.Getenv("VALKEY_PASSWORD"), 15)
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPlanCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPlanCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := pc.GetPlan(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}

	plan := &planner.CachedPlan{
		Model: "gemini-2.5-flash",
		Slides: []models.Slide{
			{Title: "Hook", Layout: models.LayoutCover},
			{Title: "Steps", Body: models.BulletBody("a", "b"), Layout: models.LayoutList},
			{Title: "Numbers", Stats: []models.Stat{{Value: "45%", Label: "Growth"}}, Layout: models.LayoutData},
		},
	}
	pc.SetPlan(ctx, "k1", plan)

	got, ok := pc.GetPlan(ctx, "k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Model != plan.Model || len(got.Slides) != 3 {
		t.Fatalf("got %+v", got)
	}
	if b := got.Slides[1].Body.Bullets(); len(b) != 2 || b[1] != "b" {
		t.Errorf("bullets = %v", b)
	}
	if got.Slides[2].Stats[0].Value != "45%" {
		t.Errorf("stats = %+v", got.Slides[2].Stats)
	}

	ttl := client.TTL(ctx, planKeyPrefix+"k1").Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v", ttl)
	}
}

func TestPlanCacheCorruptEntryIsMiss(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPlanCache(client, 0)
	ctx := context.Background()

	client.Set(ctx, planKeyPrefix+"bad", "{not json", time.Minute)
	if _, ok := pc.GetPlan(ctx, "bad"); ok {
		t.Fatal("expected miss for corrupt entry")
	}
	if n := client.Exists(ctx, planKeyPrefix+"bad").Val(); n != 0 {
		t.Error("corrupt entry was not dropped")
	}
}

func TestPlanCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPlanCache(client, time.Minute)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		pc.SetPlan(ctx, k, &planner.CachedPlan{Slides: []models.Slide{{Title: k}}})
	}
	n, err := pc.Invalidate(ctx)
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d, want 3", n)
	}
	if _, ok := pc.GetPlan(ctx, "a"); ok {
		t.Error("plan survived invalidation")
	}
}

func TestPlanCacheWithPlanner(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPlanCache(client, time.Minute)

	calls := 0
	gen := generatorFunc(func() (string, error) {
		calls++
		return `[{"title":"Hook","layout":"cover"},{"title":"Body","body":"text"},{"title":"Bye","layout":"cta"}]`, nil
	})
	p := planner.New(planner.WithGenerators(gen), planner.WithCache(pc))

	ctx := context.Background()
	text := "A unique source text for the plan cache integration test."
	first, err := p.Plan(ctx, text, models.ArchetypeTips, 7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Plan(ctx, text, models.ArchetypeTips, 7)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("generator called %d times, want 1", calls)
	}
	if first.Source != planner.SourceModel || second.Source != planner.SourceCache {
		t.Errorf("sources = %q, %q", first.Source, second.Source)
	}
	if len(second.Slides) != len(first.Slides) {
		t.Errorf("cached plan has %d slides, want %d", len(second.Slides), len(first.Slides))
	}
}

type generatorFunc func() (string, error)

func (f generatorFunc) Name() string { return "fake" }

func (f generatorFunc) Generate(context.Context, string, string) (string, error) { return f() }
