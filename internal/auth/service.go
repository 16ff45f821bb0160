// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/api/internal/platform/apperr"
	"github.com/taskhive/api/internal/platform/dberr"
	"github.com/taskhive/api/internal/platform/sec"
	"github.com/taskhive/api/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// IssueAccessToken creates a signed JWT string carrying the given identity.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - name: The display name of the account.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	IssueAccessToken(userID, email, name string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or sign-in logic must be reviewed by the security team.
type Service struct {
	userRepository  UserRepository
	tokenRepository RefreshTokenRepository
	tokenProvider   TokenProvider
	refreshTTL      time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokenRepo RefreshTokenRepository,
	tokenProv TokenProvider,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		tokenProvider:   tokenProv,
		refreshTTL:      refreshTTL,
	}
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

/*
SignUp validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, handling password hashing and
duplicate-email detection. A successful signup immediately opens a session,
so the client receives tokens without a follow-up sign-in. A failed signup
leaves no account behind.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *Session: Transport-ready session credentials for the created account
  - err: Conflict (if the email is taken) or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if !dberr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. The unique index on LOWER(email)
	// backstops the check above under concurrent signups.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.openSession(context, user)
}

// # Authentication Flow

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Email    string
	Password string
}

// Session represents a successfully established user session.
type Session struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
SignIn validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and opens a new session with a fresh refresh token.

Both an unknown email and a wrong password surface as the same generic
Unauthorized err to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: SignInInput

Returns:
  - *Session: Transport-ready session credentials
  - err: Unauthorized or internal failures
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*Session, error) {

	user, err := service.userRepository.FindByEmail(context, input.Email)

	// An absent user gets the same generic message as a wrong password to
	// prevent enumeration. Any other failure is a real store outage and must
	// keep its internal classification.
	if dberr.IsNotFound(err) {
		return nil, apperr.Unauthorized("Wrong email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_signin_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Wrong email or password")
	}

	return service.openSession(context, user)
}

/*
openSession mints an access token and persists a fresh refresh token.

Description: Shared tail of the signup and sign-in flows. The refresh token
row freezes an identity snapshot of the user at session-open time.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *Session: Transport-ready session credentials
  - err: Token generation or storage failures
*/
func (service *Service) openSession(context context.Context, user *User) (*Session, error) {

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Freeze the identity snapshot into the session row
	snapshot, err := json.Marshal(user.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("auth_service_snapshot_failed: %w", err)
	}

	// The refresh credential is a random UUIDv4: unlike the time-sortable
	// v7 used for entity IDs, it must not leak issuance time.
	expiresAt := time.Now().Add(service.refreshTTL)
	refreshToken := &RefreshToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Snapshot:  snapshot,
		ExpiresAt: expiresAt,
	}

	if err := service.tokenRepository.Create(context, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken.Token,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Session Management

/*
Refresh exchanges a valid refresh token for a fresh access token.

Description: Looks up the stored session credential and mints a new access
token from the identity snapshot frozen at sign-in. The refresh token itself
is NOT rotated: the same credential remains usable until its expiry, and the
response echoes it back unchanged.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New access token alongside the original refresh credential
  - err: BadRequest (unknown or expired token) or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {

	record, err := service.tokenRepository.FindValid(context, refreshToken)

	// An expired token and an unknown one look identical to the caller.
	// A store failure does not: it stays internal so it reaches the
	// 500-path logging instead of hiding behind a client error.
	if dberr.IsNotFound(err) {
		return nil, apperr.BadRequest("Invalid refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	identity, err := record.Identity()
	if err != nil {
		return nil, fmt.Errorf("auth_service_snapshot_decode_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.IssueAccessToken(identity.ID, identity.Email, identity.Name)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          record.Token,
		RefreshTokenExpiresAt: record.ExpiresAt,
	}, nil
}

/*
PurgeExpiredTokens removes refresh tokens past their expiration.

Description: Housekeeping entry point for the background jobs runner.

Parameters:
  - context: context.Context

Returns:
  - int64: Number of tokens removed
  - err: Cleanup failures
*/
func (service *Service) PurgeExpiredTokens(context context.Context) (int64, error) {
	return service.tokenRepository.DeleteExpired(context, time.Now())
}

// # Profile Management

/*
Me resolves the authenticated user's current profile.

Description: Looks up the account referenced by a verified access token.
A token whose subject no longer exists (deleted account) is treated as an
authentication failure, not a lookup miss.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: Unauthorized (orphaned token) or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// UpdateInput holds the optional profile fields an authenticated user may change.
//
// A nil field means "leave unchanged".
type UpdateInput struct {
	Name     *string
	Password *string
}

/*
UpdateProfile applies a partial update to the authenticated user's account.

Description: Absent fields keep their current values. A new password is
re-hashed before storage; the plain text never reaches the repository.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *User: Entity reflecting the applied changes
  - err: Unauthorized (orphaned token), or hashing/storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*User, error) {
	user, err := service.Me(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("auth_service_update_hash_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}
