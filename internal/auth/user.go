// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, RefreshToken) and logic for
authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"encoding/json"
	"time"
)

// # Domain Entities

// User represents a registered member of the Taskhive platform.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the compact user view embedded in refresh-token snapshots
// and returned by session endpoints.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Snapshot captures the user's identity at the moment a session is opened.
func (user *User) Snapshot() Identity {
	return Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// RefreshToken represents a long-lived session credential.
//
// The identity of the holder is frozen into [RefreshToken.Snapshot] at
// creation time, so access tokens minted during a refresh reflect the
// identity as it was when the session was opened.
type RefreshToken struct {
	Token     string          `json:"token"` // UUID primary key; the opaque credential itself.
	UserID    string          `json:"user_id"`
	Snapshot  json.RawMessage `json:"-"` // Serialized Identity. Omitted for security.
	ExpiresAt time.Time       `json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// Identity deserializes the frozen identity snapshot.
func (token *RefreshToken) Identity() (Identity, error) {
	var identity Identity
	if err := json.Unmarshal(token.Snapshot, &identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}
