// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package todo

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/api/internal/platform/apperr"
	"github.com/taskhive/api/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns a page of the user's todos, newest first, plus the total count.

Description: Optional title search uses ILIKE with the term wrapped in
wildcards. The count query mirrors the filter so pagination metadata stays
consistent with the page contents.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Todo: Hydrated page
  - int: Total matching rows
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, userID string, filter Filter, limit, offset int) ([]*Todo, int, error) {
	query := `
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE user_id = $1`
	countQuery := `SELECT count(*) FROM todos WHERE user_id = $1`

	args := []any{userID}
	countArgs := []any{userID}

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query += ` AND title ILIKE $2`
		countQuery += ` AND title ILIKE $2`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	// Newest first: UUIDv7 keys are time-sortable but created_at is explicit.
	query += ` ORDER BY created_at DESC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "todo")
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "todo")
	}
	defer rows.Close()

	var todos []*Todo
	for rows.Next() {
		item := &Todo{}
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Description,
			&item.Completed,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "todo")
		}
		todos = append(todos, item)
	}

	return todos, total, nil
}

/*
FindByID retrieves a single todo scoped to its owner.

Description: The user_id predicate makes foreign rows invisible: a todo
belonging to another user resolves to NotFound, not Forbidden.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - *Todo: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, userID, id string) (*Todo, error) {
	const query = `
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	item := &Todo{}
	err := repository.pool.QueryRow(context, query, id, userID).Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.Description,
		&item.Completed,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "todo")
	}

	return item, nil
}

/*
Create persists a new todo row.

Parameters:
  - context: context.Context
  - todo: *Todo

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, todo *Todo) error {
	const query = `
		INSERT INTO todos (
			id, user_id, title, description, completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.CreatedAt,
		todo.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "todo")
	}

	return nil
}

/*
Update persists changes to an existing todo, still scoped to its owner.

Parameters:
  - context: context.Context
  - todo: *Todo

Returns:
  - error: apperr.NotFound (missing or foreign row) or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, todo *Todo) error {
	const query = `
		UPDATE todos
		SET title = $3, description = $4, completed = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`

	todo.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "todo")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("todo")
	}

	return nil
}

/*
Delete removes the user's todo with the given ID.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - error: apperr.NotFound (missing or foreign row) or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, id string) error {
	const query = "DELETE FROM todos WHERE id = $1 AND user_id = $2"

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "todo")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("todo")
	}

	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
