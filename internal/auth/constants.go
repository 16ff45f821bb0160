// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package auth

// # Validation Constraints

const (
	// NameMinLength is the shortest display name we accept at signup.
	NameMinLength = 3

	// NameMaxLength caps display names to keep list views and logs sane.
	NameMaxLength = 100
)

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRefreshToken = "refresh_token"
	FieldAccessToken  = "access_token"
	FieldTokenType    = "token_type"
	FieldUser         = "user"
)
