// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package follow manages the directed social graph between users.

An [Edge] means "follower reads author": it is binary present/absent, never
updated in place, and at most one edge exists per ordered (follower, author)
pair. The storage layer enforces that uniqueness so repeated follow requests
— including concurrent ones — can never double an edge and skew feed or
count computations.

# Core Responsibility

  - Graph Mutation: Idempotent follow/unfollow with self-follow rejection.
  - Aggregation: Follower/following counts and membership checks for profiles.
*/
package follow

import (
	"context"
	"time"
)

// # Core Entities

// Edge represents a directed follow relationship: follower reads author.
type Edge struct {
	ID         string    `json:"id"` // UUIDv7
	FollowerID string    `json:"follower_id"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats aggregates the social counters shown on a profile page.
type Stats struct {
	Followers   int  `json:"followers"`
	Following   int  `json:"following"`
	IsFollowing bool `json:"is_following"` // Whether the viewer follows this author.
}

// # Graph Data Access

// Repository defines the data access contract for follow edges.
type Repository interface {

	/*
		Create inserts an edge if an identical one does not already exist.

		Description: Relies on the storage-level uniqueness of
		(follower, author) plus an atomic insert-if-absent primitive, so the
		operation is race-free under concurrent requests.

		Parameters:
		  - context: context.Context
		  - edge: *Edge

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, edge *Edge) error

	/*
		Find retrieves the edge for an ordered (follower, author) pair.

		Parameters:
		  - context: context.Context
		  - followerID, authorID: string (UUID)

		Returns:
		  - *Edge: Hydrated edge
		  - error: apperr.NotFound if absent
	*/
	Find(context context.Context, followerID, authorID string) (*Edge, error)

	/*
		Delete removes the edge for an ordered pair. Deleting a missing edge
		is a no-op, not an error.

		Parameters:
		  - context: context.Context
		  - followerID, authorID: string (UUID)

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, followerID, authorID string) error

	/*
		Exists reports whether follower currently follows author.

		Parameters:
		  - context: context.Context
		  - followerID, authorID: string (UUID)

		Returns:
		  - bool: Edge presence
		  - error: Retrieval failures
	*/
	Exists(context context.Context, followerID, authorID string) (bool, error)

	/*
		CountFollowers returns the number of edges pointing AT an author.

		Parameters:
		  - context: context.Context
		  - authorID: string (UUID)

		Returns:
		  - int: Follower count
		  - error: Retrieval failures
	*/
	CountFollowers(context context.Context, authorID string) (int, error)

	/*
		CountFollowing returns the number of edges sourced FROM a user.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)

		Returns:
		  - int: Following count
		  - error: Retrieval failures
	*/
	CountFollowing(context context.Context, userID string) (int, error)
}
