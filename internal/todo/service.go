// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package todo

import (
	"context"

	"github.com/taskhive/api/pkg/pagination"
	"github.com/taskhive/api/pkg/uuidv7"
)

// Service implements the task management use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns a page of the user's todos with pagination metadata.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Todo: Page of results
  - pagination.Meta: Metadata for the response envelope
  - err: Retrieval failures
*/
func (service *Service) List(context context.Context, userID string, filter Filter, params pagination.Params) ([]*Todo, pagination.Meta, error) {
	todos, total, err := service.repository.List(context, userID, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	// Empty pages serialize as [] rather than null.
	if todos == nil {
		todos = []*Todo{}
	}

	return todos, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Get returns a single todo owned by the user.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - *Todo: Hydrated entity
  - err: NotFound (missing or foreign) or retrieval failures
*/
func (service *Service) Get(context context.Context, userID, id string) (*Todo, error) {
	return service.repository.FindByID(context, userID, id)
}

// CreateInput holds the data required to create a todo.
type CreateInput struct {
	Title       string
	Description string
}

/*
Create persists a new todo for the user.

Description: New todos always start incomplete.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Todo: Created entity
  - err: Persistence failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Todo, error) {
	item := &Todo{
		ID:          uuidv7.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
	}

	if err := service.repository.Create(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateInput holds the optional fields a todo update may change.
//
// A nil field means "leave unchanged".
type UpdateInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

/*
Update applies a partial update to the user's todo.

Parameters:
  - context: context.Context
  - userID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Todo: Entity reflecting the applied changes
  - err: NotFound (missing or foreign) or persistence failures
*/
func (service *Service) Update(context context.Context, userID, id string, input UpdateInput) (*Todo, error) {
	item, err := service.repository.FindByID(context, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}

	if err := service.repository.Update(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

/*
Delete removes the user's todo.

Parameters:
  - context: context.Context
  - userID: string
  - id: string

Returns:
  - err: NotFound (missing or foreign) or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, id string) error {
	return service.repository.Delete(context, userID, id)
}
