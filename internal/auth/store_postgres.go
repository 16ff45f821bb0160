// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/api/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are translated
// into domain-friendly [apperr.AppError] values by [dberr.Wrap] so callers
// never see storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users table.

Description: Deep-persists account data, initializing timestamps when absent.
A duplicate email trips the unique index and surfaces as a Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			id, name, email, password_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Case-insensitive lookup so signup and signin agree on what
"the same address" means regardless of how the client cased it.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)`

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	return user, nil
}

/*
Update persists changes to a user's mutable fields.

Description: Synchronizes the in-memory user state with the database,
refreshing the updated_at timestamp.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users
		SET name = $2, password_hash = $3, updated_at = $4
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.PasswordHash,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user")
	}

	return nil
}

// # Refresh Token Repository

// PostgresRefreshTokenRepository implements the RefreshTokenRepository interface.
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository creates a new PostgreSQL implementation of RefreshTokenRepository.
func NewRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

/*
Create persists a new refresh token into the refresh_tokens table.

Description: Records a successful sign-in session, freezing the user's
identity snapshot into the row as jsonb.

Parameters:
  - context: context.Context
  - token: *RefreshToken

Returns:
  - error: Storage failures
*/
func (repository *PostgresRefreshTokenRepository) Create(context context.Context, token *RefreshToken) error {
	const query = `
		INSERT INTO refresh_tokens (
			token, user_id, snapshot, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5)`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		token.Token,
		token.UserID,
		token.Snapshot,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "refresh token")
	}

	return nil
}

/*
FindValid retrieves a non-expired refresh token by its value.

Description: Expiry is enforced in the query itself, so an expired row and
a missing row both resolve to NotFound and are indistinguishable to callers.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *RefreshToken: Hydrated session credential
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRefreshTokenRepository) FindValid(context context.Context, token string) (*RefreshToken, error) {
	const query = `
		SELECT token, user_id, snapshot, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1 AND expires_at > NOW()`

	record := &RefreshToken{}
	err := repository.pool.QueryRow(context, query, token).Scan(
		&record.Token,
		&record.UserID,
		&record.Snapshot,
		&record.ExpiresAt,
		&record.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "refresh token")
	}

	return record, nil
}

/*
DeleteExpired permanently removes all refresh tokens past their expiration.

Description: Cleanup task to reclaim storage from stale sessions. Invoked
periodically by the background jobs runner.

Parameters:
  - context: context.Context
  - cutoff: time.Time

Returns:
  - int64: Number of rows removed
  - error: Cleanup failures
*/
func (repository *PostgresRefreshTokenRepository) DeleteExpired(context context.Context, cutoff time.Time) (int64, error) {
	const query = "DELETE FROM refresh_tokens WHERE expires_at <= $1"

	tag, err := repository.pool.Exec(context, query, cutoff)
	if err != nil {
		return 0, dberr.Wrap(err, "refresh token")
	}

	return tag.RowsAffected(), nil
}
