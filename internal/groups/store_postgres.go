// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package groups

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pulse/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed community store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns a paginated list of communities ordered by title.

Description: Uses COUNT(*) OVER() for total metadata in a single round trip.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Group: Slice of communities
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Group, int, error) {
	const query = `
		SELECT id, title, slug, description, createdat, COUNT(*) OVER() AS total
		FROM community
		ORDER BY title ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_communities")
	}
	defer rows.Close()

	var communities []*Group
	var total int
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description, &group.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_community")
		}
		communities = append(communities, group)
	}

	return communities, total, nil
}

/*
FindBySlug retrieves a community by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Group: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Group, error) {
	const query = `
		SELECT id, title, slug, description, createdat
		FROM community
		WHERE slug = $1
	`
	group := &Group{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&group.ID, &group.Title, &group.Slug, &group.Description, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_community_by_slug")
	}
	return group, nil
}

/*
Create inserts a new community record.

Parameters:
  - context: context.Context
  - group: *Group

Returns:
  - error: Persistence failures (apperr.Conflict on duplicate slug)
*/
func (repository *PostgresRepository) Create(context context.Context, group *Group) error {
	const query = `
		INSERT INTO community (id, title, slug, description, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		group.ID, group.Title, group.Slug, group.Description,
	).Scan(&group.CreatedAt)

	return dberr.Wrap(err, "create_community")
}
