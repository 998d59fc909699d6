// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pulse/internal/groups"
	"github.com/taibuivan/pulse/internal/platform/middleware"
	requestutil "github.com/taibuivan/pulse/internal/platform/request"
	"github.com/taibuivan/pulse/internal/platform/respond"
	"github.com/taibuivan/pulse/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for posts, comments, and feeds.
//
// listCache, when set, short-circuits repeat reads of the front page for a
// short TTL. It is applied only to the index route: the feed is personalized
// and detail pages must reflect edits immediately.
type Handler struct {
	service   *Service
	listCache func(http.Handler) http.Handler
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service, listCache func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, listCache: listCache}
}

// Routes returns a [chi.Router] with all post endpoints.
//
// The group and profile listings live under /groups/{slug}/posts and
// /profiles/{username} respectively; those routes are composed by the server
// from the exported [Handler.GroupListing] and [Handler.Profile] handlers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	if handler.listCache != nil {
		router.With(handler.listCache).Get("/", handler.index)
	} else {
		router.Get("/", handler.index)
	}
	router.With(middleware.RequireAuth).Post("/", handler.create)
	router.With(middleware.RequireAuth).Get("/feed", handler.feed)

	router.Route("/{postID}", func(router chi.Router) {
		router.Get("/", handler.detail)
		router.With(middleware.RequireAuth).Patch("/", handler.edit)
		router.Get("/comments", handler.listComments)
		router.With(middleware.RequireAuth).Post("/comments", handler.addComment)
	})

	return router
}

// # Listing Endpoints

/*
GET /api/v1/posts?page={n}.

Description: Front page: every post, newest first, ten per page.

Response:
  - 200: PaginatedEnvelope[[]Post]
*/
func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestWithLimit(request, IndexPageSize)

	listing, total, err := handler.service.ListAll(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listing, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/posts/feed?page={n}.

Description: Personalized feed: posts by authors the acting user follows,
newest first. Empty page when following no one.

Response:
  - 200: PaginatedEnvelope[[]Post]
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequestWithLimit(request, IndexPageSize)

	listing, total, err := handler.service.GetFeed(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listing, pagination.NewMeta(params.Page, params.Limit, total))
}

// groupListingResponse carries the resolved community alongside its posts.
type groupListingResponse struct {
	Group *groups.Group `json:"group"`
	Posts []*Post       `json:"posts"`
}

/*
GET /api/v1/groups/{slug}/posts?page={n}.

Description: Community listing: posts bound to the community, newest first,
five per page.

Response:
  - 200: PaginatedEnvelope[groupListingResponse]
  - 404: ErrNotFound: Community not found
*/
func (handler *Handler) GroupListing(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestWithLimit(request, GroupPageSize)

	group, listing, total, err := handler.service.ListByGroup(
		request.Context(),
		requestutil.Param(request, "slug"),
		params.Limit,
		params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := groupListingResponse{Group: group, Posts: listing}
	respond.Paginated(writer, payload, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/profiles/{username}?page={n}.

Description: Author profile: public account fields, post/follower aggregates,
and one page of the author's posts, five per page.

Response:
  - 200: PaginatedEnvelope[ProfileView]
  - 404: ErrNotFound: Author not found
*/
func (handler *Handler) Profile(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestWithLimit(request, ProfilePageSize)

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	view, err := handler.service.Profile(
		request.Context(),
		requestutil.Param(request, "username"),
		viewerID,
		params.Limit,
		params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, view, pagination.NewMeta(params.Page, params.Limit, view.Total))
}

// # Detail Endpoints

/*
GET /api/v1/posts/{postID}.

Response:
  - 200: PostView: Post with comments and author aggregates
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	view, err := handler.service.GetPost(request.Context(), requestutil.ID(request, "postID"), viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// # Mutation Endpoints

type createPostRequest struct {
	Text      string  `json:"text"`
	GroupSlug string  `json:"group_slug,omitempty"`
	ImagePath *string `json:"image_path,omitempty"`
}

/*
POST /api/v1/posts.

Request Body: createPostRequest

Response:
  - 201: Post: The created post
  - 400: ErrValidation: Empty text or unknown community
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createPostRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), userID, CreatePostInput{
		Text:      body.Text,
		GroupSlug: body.GroupSlug,
		ImagePath: body.ImagePath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

type editPostRequest struct {
	Text      string  `json:"text"`
	GroupSlug *string `json:"group_slug"`
	ImagePath *string `json:"image_path"`
}

/*
PATCH /api/v1/posts/{postID}.

Description: Edits a post. Only the author may edit; the original publication
timestamp is preserved. Omitting group_slug or image_path leaves the field
unchanged, sending an empty string clears it.

Request Body: editPostRequest

Response:
  - 200: Post: The updated post
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Actor is not the author
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body editPostRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.EditPost(request.Context(), userID, requestutil.ID(request, "postID"), EditPostInput{
		Text:      body.Text,
		GroupSlug: body.GroupSlug,
		ImagePath: body.ImagePath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

type addCommentRequest struct {
	Text string `json:"text"`
}

/*
POST /api/v1/posts/{postID}/comments.

Response:
  - 201: Comment: The created comment
  - 400: ErrValidation: Empty text
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body addCommentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), userID, requestutil.ID(request, "postID"), body.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/posts/{postID}/comments.

Response:
  - 200: []Comment: Every comment on the post, oldest first
  - 404: ErrNotFound: Post not found
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListComments(request.Context(), requestutil.ID(request, "postID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}
