// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

/*
Package todo implements the task management domain.

Every operation is scoped to the owning user: a todo belonging to someone
else is indistinguishable from one that does not exist.
*/
package todo

import "time"

// # Domain Entities

// Todo represents a single task owned by a user.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Validation Constraints

const (
	// TitleMaxLength caps titles to keep list views readable.
	TitleMaxLength = 200

	// DescriptionMaxLength bounds free-form descriptions.
	DescriptionMaxLength = 2000
)

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldSearch      = "search"
)
