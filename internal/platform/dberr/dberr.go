// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskhive/api/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type.
//
// # Classification
//
//   - pgx.ErrNoRows → NotFound for the named resource.
//   - SQLSTATE 23505 (unique violation) → Conflict.
//   - Everything else → Internal, with the cause retained for server logs.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict(resource + " already exists")
	}

	return apperr.Internal(fmt.Errorf("dberr: %s: %w", resource, err))
}

// IsNotFound reports whether err classifies as a missing-row error.
func IsNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}
