// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// payload.go provides a Valkey-backed cache for public API response
// bodies. When a public list or detail endpoint builds its JSON, the
// encoded payload is stored so subsequent requests skip the DB entirely.
// Any admin write clears the whole namespace; the public data set is small
// enough that recomputing it beats tracking fine-grained dependencies.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// payloadKeyPrefix is the Valkey key prefix for cached responses.
	payloadKeyPrefix = "api:"

	// DefaultPayloadTTL is how long a response body stays cached.
	DefaultPayloadTTL = 60 * time.Second
)

// PayloadCache manages public API response caching in Valkey. A nil
// *PayloadCache is valid and caches nothing, so handlers need no guard
// when Valkey is not configured.
type PayloadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPayloadCache creates a response cache backed by the given Valkey
// client.
func NewPayloadCache(client *redis.Client, ttl time.Duration) *PayloadCache {
	if ttl == 0 {
		ttl = DefaultPayloadTTL
	}
	return &PayloadCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body by key.
func (pc *PayloadCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil || pc.client == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, payloadKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("payload cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("payload cache hit", "key", key)
	return val, true
}

// Set stores an encoded response body with the configured TTL.
func (pc *PayloadCache) Set(ctx context.Context, key string, body []byte) {
	if pc == nil || pc.client == nil {
		return
	}
	if err := pc.client.Set(ctx, payloadKeyPrefix+key, body, pc.ttl).Err(); err != nil {
		slog.Warn("payload cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached response by scanning for the prefix.
// Called after any admin write, since lists, counts, menus and settings
// can all be affected by a single change.
func (pc *PayloadCache) InvalidateAll(ctx context.Context) {
	if pc == nil || pc.client == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, payloadKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("payload cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("payload cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("payload cache cleared", "deleted", deleted)
	}
}
