// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package middleware

import (
	"net/http"
	"strings"

	"github.com/taskhive/api/internal/platform/apperr"
	"github.com/taskhive/api/internal/platform/constants"
	"github.com/taskhive/api/internal/platform/ctxutil"
	"github.com/taskhive/api/internal/platform/respond"
	"github.com/taskhive/api/internal/platform/sec"
)

// bearerPrefix is the exact scheme prefix required in the Authorization header.
const bearerPrefix = "Bearer "

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing tests to inject their own verifier.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous; [RequireAuth] decides later.
//  3. If present but not exactly the Bearer scheme, reject with 401.
//  4. If present, verify via [TokenVerifier]; any failure (malformed token,
//     foreign signature, expired) short-circuits with 401 — never 500.
//  5. On success, inject [*sec.AuthClaims] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme Validation ──────────────────────────────────────────
			tokenString, hasScheme := strings.CutPrefix(authHeader, bearerPrefix)
			if !hasScheme || tokenString == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Together they form
// the short-circuiting authorization gate for protected routes: any request
// without a verified identity is rejected before the handler runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
