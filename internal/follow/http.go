// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pulse/internal/platform/middleware"
	requestutil "github.com/taibuivan/pulse/internal/platform/request"
	"github.com/taibuivan/pulse/internal/platform/respond"
	"github.com/taibuivan/pulse/internal/users/auth"
)

// UserDirectory resolves public usernames to accounts.
//
// Defined here so the handler depends on a narrow lookup contract rather than
// the full auth service.
type UserDirectory interface {
	GetByUsername(context context.Context, username string) (*auth.User, error)
}

// # Handler Implementation

// Handler implements the HTTP layer for follow-graph operations.
//
// It is mounted under /profiles/{username}/follow, so every endpoint resolves
// the target author from the enclosing route.
type Handler struct {
	service *Service
	users   UserDirectory
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service, users UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

// Routes returns a [chi.Router] with the follow/unfollow endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/", handler.follow)
	router.Delete("/", handler.unfollow)

	return router
}

// # Endpoints

/*
POST /api/v1/profiles/{username}/follow.

Description: Follows an author. Repeating the request is a no-op that returns
the existing edge.

Response:
  - 201: Edge: The follow relationship
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Author not found
  - 422: SelfFollow: Users cannot follow themselves
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.users.GetByUsername(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	edge, err := handler.service.Follow(request.Context(), viewerID, author.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, edge)
}

/*
DELETE /api/v1/profiles/{username}/follow.

Description: Unfollows an author. Idempotent.

Response:
  - 204: No Content: Success (including not-followed)
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Author not found
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.users.GetByUsername(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfollow(request.Context(), viewerID, author.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
