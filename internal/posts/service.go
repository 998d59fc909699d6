// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pulse/internal/follow"
	"github.com/taibuivan/pulse/internal/groups"
	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/internal/platform/validate"
	"github.com/taibuivan/pulse/internal/users/auth"
	"github.com/taibuivan/pulse/pkg/uuid"
)

// # Collaborator Contracts

// GroupDirectory resolves community slugs to communities.
type GroupDirectory interface {
	GetGroup(context context.Context, slug string) (*groups.Group, error)
}

// UserDirectory resolves public usernames to accounts.
type UserDirectory interface {
	GetByUsername(context context.Context, username string) (*auth.User, error)
}

// SocialGraph supplies the follow-graph aggregates shown on profiles.
type SocialGraph interface {
	Stats(context context.Context, authorID, viewerID string) (*follow.Stats, error)
}

// # Service Layer

// Service orchestrates business rules for posts, comments, and feeds.
type Service struct {
	repo   Repository
	groups GroupDirectory
	users  UserDirectory
	social SocialGraph
	logger *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repo Repository, groupDir GroupDirectory, userDir UserDirectory, social SocialGraph, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		groups: groupDir,
		users:  userDir,
		social: social,
		logger: logger,
	}
}

// # Read Surfaces

/*
ListAll retrieves the front-page listing: every post, newest first.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total post count
  - error: Retrieval errors
*/
func (service *Service) ListAll(context context.Context, limit, offset int) ([]*Post, int, error) {
	return service.repo.ListAll(context, limit, offset)
}

/*
ListByGroup retrieves the community listing for a slug, newest first.

Parameters:
  - context: context.Context
  - groupSlug: string
  - limit, offset: int

Returns:
  - *groups.Group: The resolved community
  - []*Post: Page of posts
  - int: Total matching count
  - error: apperr.NotFound for an unknown slug, or retrieval errors
*/
func (service *Service) ListByGroup(context context.Context, groupSlug string, limit, offset int) (*groups.Group, []*Post, int, error) {
	group, err := service.groups.GetGroup(context, groupSlug)
	if err != nil {
		return nil, nil, 0, err
	}

	listing, total, err := service.repo.ListByGroup(context, group.ID, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	return group, listing, total, nil
}

/*
GetFeed retrieves the personalized feed: posts authored by anyone the acting
user follows, newest first. A user with no follows gets an empty page, not
an error.

Parameters:
  - context: context.Context
  - userID: string (Acting user UUID)
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) GetFeed(context context.Context, userID string, limit, offset int) ([]*Post, int, error) {
	return service.repo.ListFeed(context, userID, limit, offset)
}

// ProfileAuthor is the public subset of an account shown on a profile page.
type ProfileAuthor struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// ProfileView bundles one page of an author's posts with their aggregates.
type ProfileView struct {
	Author     ProfileAuthor `json:"author"`
	PostsCount int           `json:"posts_count"`
	Stats      *follow.Stats `json:"stats"`
	Posts      []*Post       `json:"posts"`
	Total      int           `json:"-"` // Listing total for pagination metadata.
}

/*
Profile retrieves one page of an author's posts together with the social
aggregates: total post count, follower/following counts, and whether the
viewer follows this author.

Parameters:
  - context: context.Context
  - username: string (Profile owner)
  - viewerID: string (Acting user UUID, empty for anonymous)
  - limit, offset: int

Returns:
  - *ProfileView: Composed profile page
  - error: apperr.NotFound for an unknown username, or retrieval errors
*/
func (service *Service) Profile(context context.Context, username, viewerID string, limit, offset int) (*ProfileView, error) {
	author, err := service.users.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	listing, total, err := service.repo.ListByAuthor(context, author.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	// The page total from the window function vanishes on empty pages, so the
	// aggregate count is queried independently.
	postsCount, err := service.repo.CountByAuthor(context, author.ID)
	if err != nil {
		return nil, err
	}

	stats, err := service.social.Stats(context, author.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Author: ProfileAuthor{
			ID:          author.ID,
			Username:    author.Username,
			DisplayName: author.DisplayName,
			Bio:         author.Bio,
		},
		PostsCount: postsCount,
		Stats:      stats,
		Posts:      listing,
		Total:      total,
	}, nil
}

// PostView bundles a single post with its comment thread and the author's
// social aggregates.
type PostView struct {
	Post     *Post         `json:"post"`
	Comments []*Comment    `json:"comments"`
	Stats    *follow.Stats `json:"stats"`
}

/*
GetPost retrieves a single post with its comments and author aggregates.

Parameters:
  - context: context.Context
  - postID: string
  - viewerID: string (Acting user UUID, empty for anonymous)

Returns:
  - *PostView: Composed detail page
  - error: apperr.NotFound if missing, or retrieval errors
*/
func (service *Service) GetPost(context context.Context, postID, viewerID string) (*PostView, error) {
	post, err := service.repo.FindByID(context, postID)
	if err != nil {
		return nil, err
	}

	comments, err := service.repo.ListComments(context, postID)
	if err != nil {
		return nil, err
	}

	stats, err := service.social.Stats(context, post.AuthorID, viewerID)
	if err != nil {
		return nil, err
	}

	return &PostView{Post: post, Comments: comments, Stats: stats}, nil
}

// # Mutations

// CreatePostInput holds the user-supplied fields for a new post.
type CreatePostInput struct {
	Text      string
	GroupSlug string  // Optional community binding; empty means none.
	ImagePath *string // Optional opaque reference set by the upload collaborator.
}

/*
CreatePost validates and publishes a new post on behalf of the author.

Description: The publication timestamp is assigned exactly once at insert
time and never changes afterwards.

Parameters:
  - context: context.Context
  - authorID: string (Acting user UUID)
  - input: CreatePostInput

Returns:
  - *Post: Created entity with denormalized fields hydrated
  - error: Validation, unknown-community, or persistence failures
*/
func (service *Service) CreatePost(context context.Context, authorID string, input CreatePostInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	groupID, err := service.resolveGroup(context, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      input.Text,
		ImagePath: input.ImagePath,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID),
	)

	// Re-read to hydrate the denormalized author/community fields.
	return service.repo.FindByID(context, post.ID)
}

// EditPostInput holds the user-supplied fields for a post edit.
//
// Text is always replaced. GroupSlug and ImagePath follow partial-update
// semantics: nil leaves the field unchanged, an empty string clears it.
type EditPostInput struct {
	Text      string
	GroupSlug *string
	ImagePath *string
}

/*
EditPost overwrites the mutable fields of a post on behalf of its author.

Description: Only the author may edit; anyone else receives apperr.Forbidden
and the stored post is untouched. The original publication timestamp is
always preserved, so an edit never reorders the timeline.

Parameters:
  - context: context.Context
  - actorID: string (Acting user UUID)
  - postID: string
  - input: EditPostInput

Returns:
  - *Post: Updated entity
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) EditPost(context context.Context, actorID, postID string, input EditPostInput) (*Post, error) {
	post, err := service.repo.FindByID(context, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actorID {
		return nil, apperr.Forbidden("Only the author can edit this post")
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post.Text = input.Text

	if input.GroupSlug != nil {
		groupID, err := service.resolveGroup(context, *input.GroupSlug)
		if err != nil {
			return nil, err
		}
		post.GroupID = groupID
	}

	if input.ImagePath != nil {
		if *input.ImagePath == "" {
			post.ImagePath = nil
		} else {
			post.ImagePath = input.ImagePath
		}
	}

	if err := service.repo.Update(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_edited",
		slog.String("post_id", post.ID),
		slog.String("author_id", actorID),
	)

	return service.repo.FindByID(context, post.ID)
}

/*
AddComment validates and attaches a comment to a post.

Parameters:
  - context: context.Context
  - actorID: string (Acting user UUID)
  - postID: string
  - text: string

Returns:
  - *Comment: Created entity
  - error: Validation, post-not-found, or persistence failures
*/
func (service *Service) AddComment(context context.Context, actorID, postID, text string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Surface a clean NotFound for a missing post instead of an FK violation.
	if _, err := service.repo.FindByID(context, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: actorID,
		Text:     text,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)

	return comment, nil
}

// ListComments returns every comment on a post, oldest first.
func (service *Service) ListComments(context context.Context, postID string) ([]*Comment, error) {
	if _, err := service.repo.FindByID(context, postID); err != nil {
		return nil, err
	}
	return service.repo.ListComments(context, postID)
}

// resolveGroup maps an optional community slug to its ID.
// An empty slug means the post is unbound.
func (service *Service) resolveGroup(context context.Context, groupSlug string) (*string, error) {
	if groupSlug == "" {
		return nil, nil
	}

	group, err := service.groups.GetGroup(context, groupSlug)
	if err != nil {
		return nil, err
	}

	return &group.ID, nil
}
