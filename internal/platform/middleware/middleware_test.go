// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/api/internal/platform/middleware"
)

// envConfig is a minimal AppConfig stub for CORS tests.
type envConfig struct {
	development bool
}

func (cfg envConfig) IsDevelopment() bool { return cfg.development }

func corsHandler(development bool) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.CORS(envConfig{development: development})(inner)
}

/*
TestCORS_ProductionOriginBoundary verifies that only the apex and true
subdomains are reflected into the CORS headers. Suffix-sharing registrations
and non-HTTPS origins must never receive credentialed CORS headers.
*/
func TestCORS_ProductionOriginBoundary(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"apex", "https://taskhive.io", true},
		{"subdomain", "https://app.taskhive.io", true},
		{"nested_subdomain", "https://staging.app.taskhive.io", true},
		{"suffix_sibling", "https://eviltaskhive.io", false},
		{"suffix_sibling_subdomain", "https://taskhive.io.evil.example", false},
		{"plain_http", "http://taskhive.io", false},
		{"garbage", "not a url", false},
	}

	handler := corsHandler(false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			allowOrigin := recorder.Header().Get("Access-Control-Allow-Origin")
			allowCredentials := recorder.Header().Get("Access-Control-Allow-Credentials")

			if tt.allowed {
				assert.Equal(t, tt.origin, allowOrigin)
				assert.Equal(t, "true", allowCredentials)
			} else {
				assert.Empty(t, allowOrigin)
				assert.Empty(t, allowCredentials)
			}
		})
	}
}

/*
TestCORS_DevelopmentReflectsAnyOrigin verifies the relaxed development mode.
*/
func TestCORS_DevelopmentReflectsAnyOrigin(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "http://localhost:5173")

	recorder := httptest.NewRecorder()
	corsHandler(true).ServeHTTP(recorder, request)

	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestCORS_Preflight verifies that OPTIONS requests short-circuit with 204.
*/
func TestCORS_Preflight(t *testing.T) {
	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://app.taskhive.io")

	recorder := httptest.NewRecorder()
	corsHandler(false).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://app.taskhive.io", recorder.Header().Get("Access-Control-Allow-Origin"))
}
