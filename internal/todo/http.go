// Copyright (c) 2026 Taskhive. All rights reserved.
// Author: dev@taskhive.io

package todo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/api/internal/platform/middleware"
	requestutil "github.com/taskhive/api/internal/platform/request"
	"github.com/taskhive/api/internal/platform/respond"
	"github.com/taskhive/api/internal/platform/validate"
	"github.com/taskhive/api/pkg/pagination"
)

// Handler implements task management HTTP endpoints.
type Handler struct {
	todoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{todoService: service}
}

// Routes returns a [chi.Router] configured with todo-specific routes.
//
// All endpoints require an authenticated user; the owner scope comes from
// the verified access token, never from the request body.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

/*
List returns a page of the caller's todos.

GET /api/v1/todos?page=&limit=&search=

Description: Pagination follows the shared page/limit convention; an
optional search term narrows by title.

Response:
  - 200: []Todo with pagination metadata
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get(FieldSearch)}

	todos, metadata, err := handler.todoService.List(request.Context(), userID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, todos, metadata)
}

/*
Get returns a single todo.

GET /api/v1/todos/{id}

Response:
  - 200: Todo
  - 404: ErrNotFound: Unknown ID or another user's todo
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Get(request.Context(), userID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
Create adds a new todo for the caller.

POST /api/v1/todos

Request:
  - Body: createRequest (Title, Description?)

Response:
  - 201: Todo: Created entity
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLength).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
Update applies a partial update to a todo.

PUT /api/v1/todos/{id}

Request:
  - Body: updateRequest (Title?, Description?, Completed?)

Response:
  - 200: Todo: Updated entity
  - 400: ErrInvalidJSON: Empty update or validation failure
  - 404: ErrNotFound: Unknown ID or another user's todo
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	validator.Custom(FieldTitle,
		input.Title == nil && input.Description == nil && input.Completed == nil,
		"at least one field must be provided")

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, TitleMaxLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, DescriptionMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.todoService.Update(request.Context(), userID, id, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
Delete removes a todo.

DELETE /api/v1/todos/{id}

Response:
  - 204: No Content: Todo removed
  - 404: ErrNotFound: Unknown ID or another user's todo
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.todoService.Delete(request.Context(), userID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
