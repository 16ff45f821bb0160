// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package todo

import "context"

// Filter narrows a list query.
type Filter struct {
	// Search matches case-insensitively against the todo title.
	Search string
}

// # Data Access

// Repository defines the data access contract for todos.
//
// Every method takes the owning userID; implementations must never return
// or mutate rows belonging to a different user.
type Repository interface {

	/*
		List returns a page of the user's todos plus the total match count.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Todo: Page of results, newest first
		  - int: Total number of matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, userID string, filter Filter, limit, offset int) ([]*Todo, int, error)

	/*
		FindByID returns the user's todo with the given ID.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: string

		Returns:
		  - *Todo: Hydrated entity
		  - error: NotFound (missing or foreign) or retrieval failures
	*/
	FindByID(context context.Context, userID, id string) (*Todo, error)

	/*
		Create persists a new todo.

		Parameters:
		  - context: context.Context
		  - todo: *Todo

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, todo *Todo) error

	/*
		Update persists changes to an existing todo.

		Parameters:
		  - context: context.Context
		  - todo: *Todo

		Returns:
		  - error: NotFound (missing or foreign) or persistence failures
	*/
	Update(context context.Context, todo *Todo) error

	/*
		Delete removes the user's todo with the given ID.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: string

		Returns:
		  - error: NotFound (missing or foreign) or persistence failures
	*/
	Delete(context context.Context, userID, id string) error
}
