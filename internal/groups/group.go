// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package groups manages the communities that posts can be published into.

A community is an admin-created topic space with an immutable slug identity.
Posts reference a community optionally; deleting a community detaches its
posts rather than removing them.

# Core Responsibility

  - Identity: Defines the [Group] entity with a unique URL slug.
  - Discovery: Paginated listing and slug-based lookup.
*/
package groups

import (
	"context"
	"time"
)

// # Core Entities

// Group represents a community that posts can be published into.
type Group struct {
	ID          string    `json:"id"` // UUIDv7
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSlug        = "slug"
)

// # Group Data Access

// Repository defines the data access contract for communities.
type Repository interface {

	/*
		List returns a paginated slice of communities and the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Group: Slice of communities, ordered by title
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Group, int, error)

	/*
		FindBySlug retrieves a community by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Group: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Group, error)

	/*
		Create persists a new community.

		Description: The unique index on slug surfaces duplicates as
		apperr.Conflict via the dberr bridge.

		Parameters:
		  - context: context.Context
		  - group: *Group

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, group *Group) error
}
