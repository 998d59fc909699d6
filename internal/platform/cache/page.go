// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides a Redis-backed read-through cache for hot read endpoints.

The front-page listing is by far the most requested resource and tolerates a
short staleness window. Caching the fully rendered JSON response lets repeat
requests skip the database query and serialization entirely.

Core Responsibilities:

  - Volatility: Entries carry a fixed, short TTL; no explicit invalidation is
    required for correctness.
  - Transparency: The decorator is correctness-neutral; on any Redis failure
    the request falls through to the live handler.
*/
package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pulse/internal/platform/constants"
)

// DefaultPageTTL bounds how stale a cached page response may be served.
const DefaultPageTTL = 20 * time.Second

// PageCache stores rendered JSON responses for GET endpoints in Redis.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewPageCache constructs a [PageCache] with the given TTL.
// A zero TTL falls back to [DefaultPageTTL].
func NewPageCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves a cached response body for a key. The second return value
// reports a cache hit.
func (cache *PageCache) Get(context context.Context, key string) ([]byte, bool) {
	payload, err := cache.client.Get(context, constants.RedisPrefixPageCache+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("page_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores a rendered response body under a key with the configured TTL.
func (cache *PageCache) Set(context context.Context, key string, payload []byte) {
	if err := cache.client.Set(context, constants.RedisPrefixPageCache+key, payload, cache.ttl).Err(); err != nil {
		cache.logger.Warn("page_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// # HTTP Decorator

// bufferingWriter captures a handler's response so it can be stored after a miss.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (writer *bufferingWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

func (writer *bufferingWriter) Write(payload []byte) (int, error) {
	writer.body.Write(payload)
	return writer.ResponseWriter.Write(payload)
}

// Middleware wraps a GET endpoint with read-through caching.
//
// The cache key is the request path plus its raw query string, so each page of
// a paginated listing is cached independently. Only 200 responses are stored.
func (cache *PageCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet {
			next.ServeHTTP(writer, request)
			return
		}

		key := RequestKey(request)

		if payload, hit := cache.Get(request.Context(), key); hit {
			writer.Header().Set("Content-Type", "application/json; charset=utf-8")
			writer.Header().Set("X-Cache", "HIT")
			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write(payload)
			return
		}

		buffered := &bufferingWriter{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(buffered, request)

		if buffered.status == http.StatusOK {
			cache.Set(request.Context(), key, buffered.body.Bytes())
		}
	})
}

// RequestKey derives the cache key for a request: path plus raw query string.
func RequestKey(request *http.Request) string {
	if request.URL.RawQuery == "" {
		return request.URL.Path
	}
	return request.URL.Path + "?" + request.URL.RawQuery
}
