// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/api/internal/platform/ctxutil"
	"github.com/taskhive/api/internal/platform/middleware"
	"github.com/taskhive/api/internal/platform/sec"
)

// newProtectedHandler builds an Authenticate+RequireAuth chain around a
// handler that echoes back the authenticated user id.
func newProtectedHandler(verifier middleware.TokenVerifier) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ctxutil.GetAuthUser(r.Context())
		w.Header().Set("X-Test-User", claims.UserID())
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireAuth(inner))
}

/*
TestAuthGate_Rejections verifies that every failure shape short-circuits
with 401 — never 500 — before the handler runs.
*/
func TestAuthGate_Rejections(t *testing.T) {
	tokenService := sec.NewTokenService("gate-test-secret", time.Hour)
	foreignService := sec.NewTokenService("some-other-secret", time.Hour)

	foreignToken, err := foreignService.IssueAccessToken("user-1", "ann@x.com", "Ann")
	require.NoError(t, err)

	expiredService := sec.NewTokenService("gate-test-secret", -time.Minute)
	expiredToken, err := expiredService.IssueAccessToken("user-1", "ann@x.com", "Ann")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing_header", ""},
		{"wrong_scheme", "Basic abc123"},
		{"bearer_no_token", "Bearer "},
		{"malformed_token", "Bearer not-a-jwt"},
		{"foreign_signature", "Bearer " + foreignToken},
		{"expired_token", "Bearer " + expiredToken},
	}

	handler := newProtectedHandler(tokenService)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
			assert.Empty(t, recorder.Header().Get("X-Test-User"))
		})
	}
}

/*
TestAuthGate_Success verifies that a valid bearer token reaches the handler
with claims injected into the request context.
*/
func TestAuthGate_Success(t *testing.T) {
	tokenService := sec.NewTokenService("gate-test-secret", time.Hour)

	token, err := tokenService.IssueAccessToken("user-42", "ann@x.com", "Ann")
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	newProtectedHandler(tokenService).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-42", recorder.Header().Get("X-Test-User"))
}
