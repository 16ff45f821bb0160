// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhive/api/internal/platform/constants"
)

// Store is the counter backend for the fixed-window limiter.
type Store interface {
	// Incr increments the counter for the client identity and returns the
	// new count within the current window. The window is anchored at the
	// first increment and resets once it has fully elapsed.
	Incr(ctx context.Context, clientID string, window time.Duration) (int64, error)
}

// # In-Memory Store

type memoryWindow struct {
	start time.Time
	count int64
}

// MemoryStore keeps per-client windows in a mutex-guarded map.
//
// # Concurrency
//
// All increments take the mutex so concurrent bursts from the same client
// are never undercounted.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*memoryWindow),
	}
}

// Incr implements [Store].
func (store *MemoryStore) Incr(_ context.Context, clientID string, window time.Duration) (int64, error) {
	now := time.Now()

	store.mu.Lock()
	defer store.mu.Unlock()

	current, found := store.windows[clientID]
	if !found || now.Sub(current.start) >= window {
		current = &memoryWindow{start: now}
		store.windows[clientID] = current
	}

	current.count++
	return current.count, nil
}

// Prune removes windows that fully elapsed before the cutoff, reclaiming
// memory from clients that have gone quiet. Wired into the background job
// runner.
func (store *MemoryStore) Prune(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	store.mu.Lock()
	defer store.mu.Unlock()

	removed := 0
	for clientID, current := range store.windows {
		if current.start.Before(cutoff) {
			delete(store.windows, clientID)
			removed++
		}
	}
	return removed
}

// # Redis Store

// RedisStore keeps counters in Redis so multiple API instances share a
// single view of each client's window.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr implements [Store] with INCR plus an expiry set on the window's first
// increment, so the key vanishes exactly one window after the first hit.
func (store *RedisStore) Incr(ctx context.Context, clientID string, window time.Duration) (int64, error) {
	key := constants.RedisPrefixRateLimit + clientID

	count, err := store.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis incr failed: %w", err)
	}

	if count == 1 {
		if err := store.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("ratelimit: redis expire failed: %w", err)
		}
	}

	return count, nil
}
