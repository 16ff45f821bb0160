// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt embeds its cost parameter and a fresh random salt into the output,
// so two calls on the same input produce different strings. A hashing failure
// is surfaced to the caller and must be treated as an internal error, never
// as "no match".
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// The comparison is constant-time inside bcrypt. A malformed stored hash
// yields false, indistinguishable from a plain mismatch.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
