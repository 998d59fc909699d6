// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package posts manages publications, their comments, and the derived feeds.

It handles the full lifecycle of a post — creation, author-only edits, and
commenting — plus every paginated read surface: the front page, per-community
and per-profile listings, and the personalized follow feed.

# Core Responsibility

  - Publication: Defines the [Post] and [Comment] entities.
  - Timeline: All listings are ordered by publication time, newest first.
    Editing a post never moves it in the timeline.
  - Composition: The follow feed selects posts authored by anyone the acting
    user follows.
*/
package posts

import (
	"context"
	"time"
)

// Fixed page sizes for the read surfaces. Listing pages are not
// client-negotiable.
const (
	// IndexPageSize is the page size for the front page and the follow feed.
	IndexPageSize = 10

	// GroupPageSize is the page size for community listings.
	GroupPageSize = 5

	// ProfilePageSize is the page size for author profile listings.
	ProfilePageSize = 5
)

// # Core Entities

// Post represents a published text entry, optionally bound to a community
// and carrying an optional image reference.
type Post struct {
	ID             string    `json:"id"` // UUIDv7
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"` // Denormalized for list views
	GroupID        *string   `json:"group_id,omitempty"`
	GroupSlug      *string   `json:"group_slug,omitempty"` // Denormalized for list views
	Text           string    `json:"text"`
	ImagePath      *string   `json:"image_path,omitempty"` // Opaque reference under the media root
	PubDate        time.Time `json:"pub_date"`             // Set once at creation; immutable on edit
}

// Comment represents a reader's reply attached to a post.
type Comment struct {
	ID             string    `json:"id"` // UUIDv7
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"` // Denormalized for detail views
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"` // Set once at creation
}

// # Field Identifiers

const (
	FieldText      = "text"
	FieldGroupSlug = "group_slug"
	FieldImagePath = "image_path"
)

// # Post Data Access

// Repository defines the data access contract for posts and comments.
type Repository interface {

	/*
		Create persists a new post. The publication timestamp is assigned by
		the store at insert time.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID retrieves a post with its denormalized author/community fields.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		Update overwrites the mutable fields of a post: text, community
		binding, and image reference. The publication timestamp column is
		never touched.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: apperr.NotFound if missing, or persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		ListAll returns every post, newest first, with the total count.

		Parameters:
		  - context: context.Context
		  - limit, offset: int

		Returns:
		  - []*Post: Page of posts
		  - int: Total post count
		  - error: Retrieval failures
	*/
	ListAll(context context.Context, limit, offset int) ([]*Post, int, error)

	/*
		ListByGroup returns the posts bound to a community, newest first.
		Posts without a community never appear in any group listing.

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - limit, offset: int

		Returns:
		  - []*Post: Page of posts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListByGroup(context context.Context, groupID string, limit, offset int) ([]*Post, int, error)

	/*
		ListByAuthor returns the posts published by one author, newest first.

		Parameters:
		  - context: context.Context
		  - authorID: string
		  - limit, offset: int

		Returns:
		  - []*Post: Page of posts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListByAuthor(context context.Context, authorID string, limit, offset int) ([]*Post, int, error)

	/*
		ListFeed returns the posts authored by anyone the user follows,
		newest first. A user with no follows yields an empty page.

		Parameters:
		  - context: context.Context
		  - followerID: string (Acting user UUID)
		  - limit, offset: int

		Returns:
		  - []*Post: Page of posts
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListFeed(context context.Context, followerID string, limit, offset int) ([]*Post, int, error)

	/*
		CountByAuthor returns the number of posts published by an author.

		Parameters:
		  - context: context.Context
		  - authorID: string

		Returns:
		  - int: Post count
		  - error: Retrieval failures
	*/
	CountByAuthor(context context.Context, authorID string) (int, error)

	// # Comments

	/*
		CreateComment persists a new comment. The creation timestamp is
		assigned by the store at insert time.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		ListComments returns every comment on a post, oldest first.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []*Comment: All comments on the post
		  - error: Retrieval failures
	*/
	ListComments(context context.Context, postID string) ([]*Comment, error)
}
