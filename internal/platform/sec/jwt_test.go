// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/api/internal/platform/sec"
)

const testSecret = "unit-test-secret-do-not-use-in-prod"

/*
TestTokenService_IssueAndVerify checks the happy-path round trip: issued
claims come back intact while the token is inside its TTL.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := sec.NewTokenService(testSecret, time.Hour)

	token, err := service.IssueAccessToken("user-123", "ann@x.com", "Ann")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)

	// exp must be exactly iat + TTL.
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, claims.IssuedAt.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

/*
TestTokenService_Expired verifies that a token past its exp fails with the
expired classification, not a generic error.
*/
func TestTokenService_Expired(t *testing.T) {
	// Negative TTL produces a token that is already expired at issuance.
	service := sec.NewTokenService(testSecret, -time.Minute)

	token, err := service.IssueAccessToken("user-123", "ann@x.com", "Ann")
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_ForeignSecret verifies that a token signed with a different
secret is rejected as a signature failure.
*/
func TestTokenService_ForeignSecret(t *testing.T) {
	issuer := sec.NewTokenService("other-secret", time.Hour)
	verifier := sec.NewTokenService(testSecret, time.Hour)

	token, err := issuer.IssueAccessToken("user-123", "ann@x.com", "Ann")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_Malformed verifies that structurally broken inputs are
classified as malformed.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := sec.NewTokenService(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"two_segments", "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

/*
TestTokenService_TamperedPayload verifies that flipping payload bytes breaks
the signature check.
*/
func TestTokenService_TamperedPayload(t *testing.T) {
	service := sec.NewTokenService(testSecret, time.Hour)

	token, err := service.IssueAccessToken("user-123", "ann@x.com", "Ann")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Replace the payload with a differently-padded valid base64 segment.
	tampered := parts[0] + ".eyJzdWIiOiJ1c2VyLTk5OSJ9." + parts[2]

	_, err = service.VerifyToken(tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}
