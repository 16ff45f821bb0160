// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/api/internal/auth"
	"github.com/taskhive/api/internal/platform/middleware"
	"github.com/taskhive/api/internal/platform/sec"
)

// newTestRouter wires the handler behind the same authentication middleware
// chain the server uses, backed by in-memory repositories.
func newTestRouter() http.Handler {
	tokenService := sec.NewTokenService("test-secret-key", time.Hour)
	service := auth.NewService(newMemoryUserRepository(), newMemoryTokenRepository(), tokenService, 24*time.Hour)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/api/v1/auth", handler.Routes())
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestAuthFlow_EndToEnd walks the full session lifecycle: signup, signin,
profile access with the issued token, and rejection without one.
*/
func TestAuthFlow_EndToEnd(t *testing.T) {
	router := newTestRouter()

	// 1. Signup creates the account and issues a first token pair.
	recorder := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
		"name":     "Alice Doe",
		"email":    "alice@example.com",
		"password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	registration := decodeData(t, recorder)
	require.NotEmpty(t, registration["access_token"])
	require.NotEmpty(t, registration["refresh_token"])

	// 2. Signin opens a second session with a distinct token pair.
	recorder = postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"email":    "alice@example.com",
		"password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	session := decodeData(t, recorder)
	accessToken, _ := session["access_token"].(string)
	refreshToken, _ := session["refresh_token"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, registration["access_token"], accessToken)
	assert.NotEqual(t, registration["refresh_token"], refreshToken)

	// 3. /me succeeds with the bearer token.
	request := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+accessToken)
	meRecorder := httptest.NewRecorder()
	router.ServeHTTP(meRecorder, request)

	require.Equal(t, http.StatusOK, meRecorder.Code)
	profile := decodeData(t, meRecorder)
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, "Alice Doe", profile["name"])
	assert.NotContains(t, profile, "password_hash")

	// 4. /me without a token is rejected.
	request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	anonymousRecorder := httptest.NewRecorder()
	router.ServeHTTP(anonymousRecorder, request)
	assert.Equal(t, http.StatusUnauthorized, anonymousRecorder.Code)
}

/*
TestAuthHTTP_SignupValidation verifies the input policy on account creation.
*/
func TestAuthHTTP_SignupValidation(t *testing.T) {
	router := newTestRouter()

	testCases := []struct {
		name    string
		payload map[string]string
	}{
		{"short name", map[string]string{"name": "Al", "email": "a@b.com", "password": "Sup3r-Secret"}},
		{"bad email", map[string]string{"name": "Alice", "email": "not-an-email", "password": "Sup3r-Secret"}},
		{"weak password", map[string]string{"name": "Alice", "email": "a@b.com", "password": "alllowercase"}},
		{"password with spaces", map[string]string{"name": "Alice", "email": "a@b.com", "password": "Sup3r Secret1!"}},
		{"missing password", map[string]string{"name": "Alice", "email": "a@b.com"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/api/v1/auth/signup", testCase.payload)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
		})
	}
}

/*
TestAuthHTTP_SigninRejections verifies that bad credentials yield a single
generic unauthorized message regardless of which half was wrong.
*/
func TestAuthHTTP_SigninRejections(t *testing.T) {
	router := newTestRouter()

	recorder := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
		"name": "Alice Doe", "email": "alice@example.com", "password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	unknown := postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"email": "nobody@example.com", "password": "Sup3r-Secret",
	})
	wrong := postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"email": "alice@example.com", "password": "Wrong-Passw0rd",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Contains(t, unknown.Body.String(), "Wrong email or password")
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

/*
TestAuthHTTP_Refresh verifies the token exchange endpoint, including the
rejection of fabricated credentials.
*/
func TestAuthHTTP_Refresh(t *testing.T) {
	router := newTestRouter()

	recorder := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
		"name": "Alice Doe", "email": "alice@example.com", "password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"email": "alice@example.com", "password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	session := decodeData(t, recorder)

	recorder = postJSON(t, router, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": session["refresh_token"].(string),
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	refreshed := decodeData(t, recorder)
	assert.NotEmpty(t, refreshed["access_token"])
	assert.NotEqual(t, session["access_token"], refreshed["access_token"])
	assert.Equal(t, session["refresh_token"], refreshed["refresh_token"])

	// Fabricated token.
	recorder = postJSON(t, router, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid refresh token")
}

/*
TestAuthHTTP_Update verifies partial profile updates over HTTP.
*/
func TestAuthHTTP_Update(t *testing.T) {
	router := newTestRouter()

	recorder := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
		"name": "Alice Doe", "email": "alice@example.com", "password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, router, "/api/v1/auth/signin", map[string]string{
		"email": "alice@example.com", "password": "Sup3r-Secret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	accessToken := decodeData(t, recorder)["access_token"].(string)

	body, err := json.Marshal(map[string]string{"name": "Alice Renamed"})
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodPut, "/api/v1/auth/update", bytes.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+accessToken)
	updateRecorder := httptest.NewRecorder()
	router.ServeHTTP(updateRecorder, request)

	require.Equal(t, http.StatusOK, updateRecorder.Code)
	assert.Equal(t, "Alice Renamed", decodeData(t, updateRecorder)["name"])

	// An empty update body is rejected.
	request = httptest.NewRequest(http.MethodPut, "/api/v1/auth/update", bytes.NewReader([]byte(`{}`)))
	request.Header.Set("Authorization", "Bearer "+accessToken)
	emptyRecorder := httptest.NewRecorder()
	router.ServeHTTP(emptyRecorder, request)
	assert.Equal(t, http.StatusBadRequest, emptyRecorder.Code)

	// Unauthenticated update is rejected before validation.
	request = httptest.NewRequest(http.MethodPut, "/api/v1/auth/update", bytes.NewReader(body))
	anonymousRecorder := httptest.NewRecorder()
	router.ServeHTTP(anonymousRecorder, request)
	assert.Equal(t, http.StatusUnauthorized, anonymousRecorder.Code)
}
