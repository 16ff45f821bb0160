// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined by the consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure classes. Callers that need to distinguish why a token
// was rejected match on these with [errors.Is]; everything maps to an
// unauthorized outcome at the HTTP boundary.
var (
	// ErrTokenMalformed means the compact string is not a structurally valid JWT.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrTokenSignature means the signature does not verify against our secret.
	ErrTokenSignature = errors.New("sec: token signature invalid")

	// ErrTokenExpired means the signature is valid but the token has passed exp.
	ErrTokenExpired = errors.New("sec: token expired")
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the Email and Name alongside the registered Subject, the
// authorization middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserID returns the account id carried in the registered Subject claim.
func (c *AuthClaims) UserID() string {
	return c.Subject
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is symmetric: this service is both the single trusted
// issuer and the only verifier of its tokens.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenService creates a new TokenService with the given symmetric secret
// and access-token lifetime.
func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// IssueAccessToken creates a new signed JWT access token for a user.
//
// The expiry is always IssuedAt + the configured access TTL.
func (service *TokenService) IssueAccessToken(userID, email, name string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.accessTTL)),
		},
		Email: email,
		Name:  name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// Signature integrity is checked before expiry, with zero leeway on exp.
// Failures are classified as [ErrTokenMalformed], [ErrTokenSignature], or
// [ErrTokenExpired].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps jwt library failures onto our sentinel errors while
// preserving the original cause in the chain.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	}
}
