// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that any hashed password verifies
against its own hash.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "Abcdef1!"},
		{"long_passphrase", "correct horse battery staple 42!"},
		{"unicode", "mật-khẩu-bí-mật-9$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := sec.HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			assert.True(t, sec.CheckPasswordHash(tt.password, hash))
			assert.False(t, sec.CheckPasswordHash(tt.password+"x", hash))
		})
	}
}

/*
TestHashPassword_SaltedPerCall verifies that two hashes of the same input
differ (fresh salt per call).
*/
func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := sec.HashPassword("Abcdef1!")
	require.NoError(t, err)

	second, err := sec.HashPassword("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify.
	assert.True(t, sec.CheckPasswordHash("Abcdef1!", first))
	assert.True(t, sec.CheckPasswordHash("Abcdef1!", second))
}

/*
TestCheckPasswordHash_MalformedHash verifies that a corrupted stored hash
yields false rather than a panic, indistinguishable from a mismatch.
*/
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-hash"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("Abcdef1!", tt.hash))
		})
	}
}
