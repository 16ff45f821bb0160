// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package ratelimit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/api/internal/platform/ctxutil"
	"github.com/taskhive/api/internal/platform/ratelimit"
)

/*
TestClientID exercises the identity fallback chain.
*/
func TestClientID(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{"forwarded_first_hop", "203.0.113.7, 10.0.0.1", "198.51.100.2", "192.0.2.1:4711", "203.0.113.7"},
		{"real_ip_fallback", "", "198.51.100.2", "192.0.2.1:4711", "198.51.100.2"},
		{"peer_address_fallback", "", "", "192.0.2.1:4711", "192.0.2.1"},
		{"unknown_bucket", "", "", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				request.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.expected, ratelimit.ClientID(request))
		})
	}
}

/*
TestMemoryStore_WindowSemantics verifies the fixed-window counter: counts
accumulate within the window and reset once it has elapsed.
*/
func TestMemoryStore_WindowSemantics(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()
	window := 100 * time.Millisecond

	for i := int64(1); i <= 3; i++ {
		count, err := store.Incr(ctx, "client-a", window)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// A different client has an independent counter.
	count, err := store.Incr(ctx, "client-b", window)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// After the window elapses (measured from the first hit), the counter resets.
	time.Sleep(window + 20*time.Millisecond)
	count, err = store.Incr(ctx, "client-a", window)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

/*
TestMemoryStore_ConcurrentIncrements verifies that concurrent bursts from the
same client are never undercounted.
*/
func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.Incr(ctx, "burst-client", time.Minute)
		}()
	}
	wg.Wait()

	count, err := store.Incr(ctx, "burst-client", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(workers+1), count)
}

/*
TestMemoryStore_Prune verifies that stale windows are reclaimed.
*/
func TestMemoryStore_Prune(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Incr(ctx, "stale-client", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, store.Prune(10*time.Millisecond))
	assert.Equal(t, 0, store.Prune(10*time.Millisecond))
}

/*
TestLimiter_Middleware verifies the full gate behavior: M requests pass,
the (M+1)-th gets 429, and the window eventually resets.
*/
func TestLimiter_Middleware(t *testing.T) {
	const maxRequests = 3
	window := 150 * time.Millisecond

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), maxRequests, window)
	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest := func(clientAddr string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = clientAddr
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	// First M requests pass.
	for i := 0; i < maxRequests; i++ {
		assert.Equal(t, http.StatusOK, doRequest("192.0.2.1:1000").Code)
	}

	// The (M+1)-th is rejected with a structured 429.
	rejected := doRequest("192.0.2.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Contains(t, rejected.Body.String(), "RATE_LIMITED")

	// Another client identity is unaffected.
	assert.Equal(t, http.StatusOK, doRequest("192.0.2.99:1000").Code)

	// After the window elapses, the original client is admitted again.
	time.Sleep(window + 20*time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest("192.0.2.1:1000").Code)
}

// failingStore simulates a counter-store outage on every increment.
type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

/*
TestLimiter_Middleware_StoreFailure verifies the fail-open path: a broken
counter store lets the request through but leaves an error in the log.
*/
func TestLimiter_Middleware_StoreFailure(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	limiter := ratelimit.New(failingStore{}, 1, time.Minute)
	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1000"
	request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))

	// Even repeated requests pass: with the store down, nothing is counted.
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	assert.Contains(t, logBuffer.String(), "rate_limit_store_failed")
	assert.Contains(t, logBuffer.String(), "connection refused")
}
