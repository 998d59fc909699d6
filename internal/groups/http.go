// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pulse/internal/platform/middleware"
	requestutil "github.com/taibuivan/pulse/internal/platform/request"
	"github.com/taibuivan/pulse/internal/platform/respond"
	"github.com/taibuivan/pulse/internal/platform/sec"
	"github.com/taibuivan/pulse/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for community operations.
//
// The per-community post listing lives in the posts domain; its handler is
// injected so this router can own the full /groups URL space.
type Handler struct {
	service     *Service
	postListing http.HandlerFunc
}

// NewHandler constructs a new community [Handler].
func NewHandler(service *Service, postListing http.HandlerFunc) *Handler {
	return &Handler{service: service, postListing: postListing}
}

// Routes returns a [chi.Router] configured with community endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listGroups)
	router.Get("/{slug}", handler.getGroup)
	router.Get("/{slug}/posts", handler.postListing)

	// ## Administrative
	// Communities are created by moderators, mirroring admin-managed topics.
	router.With(middleware.RequireRole(sec.RoleModerator)).Post("/", handler.createGroup)

	return router
}

// # Endpoints

/*
GET /api/v1/groups.

Description: Retrieves a paginated list of communities ordered by title.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Group: Paginated list
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	communities, total, err := handler.service.ListGroups(
		request.Context(), paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, communities, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/groups/{slug}.

Description: Retrieves a community by its unique title slug.

Response:
  - 200: Group: Success
  - 404: ErrNotFound: Community not found
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	groupSlug := requestutil.Param(request, "slug")

	group, err := handler.service.GetGroup(request.Context(), groupSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
POST /api/v1/groups.

Description: Registers a new community. Slugs are auto-generated from the title.

Request (Body):
  - { "title", "description" }

Response:
  - 201: Group: Created object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Moderator role required
  - 409: ErrConflict: Slug already taken
*/
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.CreateGroup(request.Context(), CreateGroupInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}
