// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		The lookup is case-insensitive: "Bob@Example.com" and
		"bob@example.com" resolve to the same account.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to the user's mutable fields (name, password hash).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error
}

// # Session Data Access

// RefreshTokenRepository defines the data access contract for session credentials.
type RefreshTokenRepository interface {

	/*
		Create persists a new refresh token for an authenticated sign-in.

		Parameters:
		  - context: context.Context
		  - token: *RefreshToken

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, token *RefreshToken) error

	/*
		FindValid returns the refresh token with the given value, only if it
		has not yet expired. Expired or unknown tokens are indistinguishable:
		both surface as NotFound.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *RefreshToken: Hydrated entity
		  - error: NotFound or database retrieval failures
	*/
	FindValid(context context.Context, token string) (*RefreshToken, error)

	/*
		DeleteExpired physically removes tokens whose ExpiresAt is at or
		before the given cutoff.

		Parameters:
		  - context: context.Context
		  - cutoff: time.Time

		Returns:
		  - int64: Number of rows removed
		  - error: Cleanup failures
	*/
	DeleteExpired(context context.Context, cutoff time.Time) (int64, error)
}
