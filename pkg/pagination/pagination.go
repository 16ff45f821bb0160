// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

// Package pagination provides page-based navigation for API list endpoints.
//
// # Overview
//
// List endpoints accept "page" and "limit" query parameters and return a
// [Meta] block alongside the items. Parsing and clamping live here so every
// list endpoint behaves identically.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when the client does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size; larger requests are clamped down to it.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is the ceiling of total/limit; an empty result set has zero pages.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Missing, non-numeric, or non-positive values fall back to [DefaultPage] and
// [DefaultLimit]. A limit above [MaxLimit] is clamped to [MaxLimit] rather
// than rejected, so oversized requests still succeed with the largest page
// the API serves.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
