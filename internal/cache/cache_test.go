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
		keys, _ := client.Keys(ctx, "api:*").Result()
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

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPayloadCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPayloadCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := pc.Get(ctx, "posts:p1")
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	body := []byte(`{"posts":[],"total":0}`)
	pc.Set(ctx, "posts:p1", body)

	// Hit.
	data, ok = pc.Get(ctx, "posts:p1")
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(body) {
		t.Errorf("data mismatch: got %q, want %q", data, body)
	}
}

func TestPayloadCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPayloadCache(client, 1*time.Minute)

	ctx := context.Background()

	pc.Set(ctx, "posts:p1", []byte("a"))
	pc.Set(ctx, "menu", []byte("b"))
	pc.Set(ctx, "settings", []byte("c"))

	pc.InvalidateAll(ctx)

	for _, key := range []string{"posts:p1", "menu", "settings"} {
		_, ok := pc.Get(ctx, key)
		if ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestPayloadCacheNilIsInert(t *testing.T) {
	var pc *PayloadCache

	ctx := context.Background()
	pc.Set(ctx, "x", []byte("y"))
	if _, ok := pc.Get(ctx, "x"); ok {
		t.Error("nil cache must never hit")
	}
	pc.InvalidateAll(ctx)
}

func TestNewPayloadCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	pc := NewPayloadCache(client, 0)
	if pc.ttl != DefaultPayloadTTL {
		t.Errorf("expected DefaultPayloadTTL (%v), got %v", DefaultPayloadTTL, pc.ttl)
	}
}
