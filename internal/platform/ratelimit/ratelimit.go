// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package ratelimit guards the API with a per-client, fixed-window request limit.

Every inbound request — authenticated or not — is attributed to a client
identity and counted against a trailing window. Exceeding the configured
maximum short-circuits the request with HTTP 429 before authorization or
routing runs, which also throttles brute-force attempts against the
unauthenticated signup/signin endpoints.

Counters live behind the [Store] interface with two implementations:

  - MemoryStore: per-process mutex-guarded map, the default.
  - RedisStore: shared counters for multi-instance deployments.
*/
package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/taskhive/api/internal/platform/apperr"
	"github.com/taskhive/api/internal/platform/constants"
	"github.com/taskhive/api/internal/platform/ctxutil"
	"github.com/taskhive/api/internal/platform/respond"
)

// unknownClient is the shared bucket for requests whose origin cannot be
// determined at all.
const unknownClient = "unknown"

// ClientID derives the client identity for rate accounting.
//
// # Fallback chain
//
//  1. First hop of X-Forwarded-For (proxy deployments).
//  2. X-Real-IP.
//  3. Transport-level peer address.
//  4. The constant "unknown" bucket.
func ClientID(request *http.Request) string {
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		if first, _, _ := strings.Cut(forwarded, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}

	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return strings.TrimSpace(ip)
	}

	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if request.RemoteAddr != "" {
		return request.RemoteAddr
	}

	return unknownClient
}

// Limiter enforces a maximum number of requests per client identity within a
// fixed trailing window.
type Limiter struct {
	store       Store
	maxRequests int
	window      time.Duration
}

// New constructs a Limiter over the given counter store.
func New(store Store, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware counts the request against its client identity and rejects with
// 429 once the window's maximum is exceeded.
//
// A counter-store failure does not take the API down: the failure is logged
// and the request is allowed through unthrottled.
func (limiter *Limiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientID := ClientID(request)

			count, err := limiter.store.Incr(request.Context(), clientID, limiter.window)
			if err != nil {
				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(),
					"rate_limit_store_failed",
					slog.String("client_id", clientID),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if count > int64(limiter.maxRequests) {
				respond.Error(writer, request, apperr.RateLimited(limiter.maxRequests, limiter.window))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
