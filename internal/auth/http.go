// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to session refresh and profile updates.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Orchestrates JWT issuance and refresh-token exchange.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/api/internal/platform/middleware"
	requestutil "github.com/taskhive/api/internal/platform/request"
	"github.com/taskhive/api/internal/platform/respond"
	"github.com/taskhive/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Signup, Signin, Session Refresh, Profile).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup  : Creates a new account.
//   - POST /signin  : Authenticates and returns a token pair.
//   - POST /refresh : Exchanges a refresh token for a new access token.
//   - GET  /me      : Returns the authenticated user's profile.
//   - PUT  /update  : Applies a partial profile update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/signin", handler.signin)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Put("/update", handler.update)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Description: Validates input, checks for identity conflicts, persists a new
user profile, and opens a session so the client is signed in right away.

Request:
  - Body: signupRequest (Name, Email, Password)

Response:
  - 201: Token pair plus the created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, NameMinLength).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldUser:         session.User,
	})
}

/*
Signin authenticates a user and establishes a session.

POST /api/v1/auth/signin

Description: Verifies credentials, then returns a short-lived access token
together with the long-lived refresh token opening the session.

Request:
  - Body: signinRequest (Email, Password)

Response:
  - 200: Session: Token pair and user profile
  - 401: ErrUnauthorized: Wrong email or password (deliberately merged)
*/
func (handler *Handler) signin(writer http.ResponseWriter, request *http.Request) {
	var input signinRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Only presence is validated here: password-shape feedback on signin
	// would leak which half of the credential pair was wrong.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignIn(request.Context(), SignInInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldUser:         session.User,
	})
}

/*
Refresh issues a new access token using a valid refresh token.

POST /api/v1/auth/refresh

Description: Validates the refresh token and mints a fresh access token from
the identity snapshot taken at sign-in. The refresh token is echoed back
unchanged; it stays valid until its own expiry.

Request:
  - Body: refreshRequest (RefreshToken)

Response:
  - 200: Session: New access token credentials
  - 400: ErrBadRequest: Missing, unknown, or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.RefreshToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRefreshToken, "is required"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
	})
}

/*
Me returns the authenticated user's profile.

GET /api/v1/auth/me

Description: Resolves the access token's subject to a full account record.

Response:
  - 200: User: Current profile
  - 401: ErrUnauthorized: Missing token or deleted account
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies a partial update to the authenticated user's profile.

PUT /api/v1/auth/update

Description: Accepts optional name and password fields. Absent fields keep
their current values; a present password must satisfy the signup policy.

Request:
  - Body: updateRequest (Name?, Password?)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Empty update or validation failure
  - 401: ErrUnauthorized: Missing token or deleted account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldName, input.Name == nil && input.Password == nil, "at least one field must be provided")

	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MinLen(FieldName, *input.Name, NameMinLength).
			MaxLen(FieldName, *input.Name, NameMaxLength)
	}
	if input.Password != nil {
		validator.Required(FieldPassword, *input.Password).
			Password(FieldPassword, *input.Password)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), userID, UpdateInput{
		Name:     input.Name,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
