// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pulse/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed follow-edge store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create inserts a follow edge, or does nothing if the pair already exists.

Description: The follow table carries UNIQUE (followerid, authorid);
ON CONFLICT DO NOTHING makes the insert an atomic insert-if-absent, so two
concurrent follow requests for the same pair commit exactly one row.

Parameters:
  - context: context.Context
  - edge: *Edge

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, edge *Edge) error {
	const query = `
		INSERT INTO follow (id, followerid, authorid, createdat)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (followerid, authorid) DO NOTHING
	`
	_, err := repository.db.Exec(context, query, edge.ID, edge.FollowerID, edge.AuthorID)
	return dberr.Wrap(err, "create_follow_edge")
}

/*
Find retrieves the edge for an ordered (follower, author) pair.

Parameters:
  - context: context.Context
  - followerID, authorID: string

Returns:
  - *Edge: Hydrated edge
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) Find(context context.Context, followerID, authorID string) (*Edge, error) {
	const query = `
		SELECT id, followerid, authorid, createdat
		FROM follow
		WHERE followerid = $1 AND authorid = $2
	`
	edge := &Edge{}
	err := repository.db.QueryRow(context, query, followerID, authorID).Scan(
		&edge.ID, &edge.FollowerID, &edge.AuthorID, &edge.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_follow_edge")
	}
	return edge, nil
}

/*
Delete removes the edge for an ordered pair. Idempotent.

Parameters:
  - context: context.Context
  - followerID, authorID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, followerID, authorID string) error {
	const query = `DELETE FROM follow WHERE followerid = $1 AND authorid = $2`
	_, err := repository.db.Exec(context, query, followerID, authorID)
	return dberr.Wrap(err, "delete_follow_edge")
}

/*
Exists reports whether follower currently follows author.

Parameters:
  - context: context.Context
  - followerID, authorID: string

Returns:
  - bool: Edge presence
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Exists(context context.Context, followerID, authorID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM follow WHERE followerid = $1 AND authorid = $2)`
	var exists bool
	if err := repository.db.QueryRow(context, query, followerID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "follow_edge_exists")
	}
	return exists, nil
}

/*
CountFollowers returns the number of edges pointing at an author.

Parameters:
  - context: context.Context
  - authorID: string

Returns:
  - int: Follower count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) CountFollowers(context context.Context, authorID string) (int, error) {
	const query = `SELECT COUNT(*) FROM follow WHERE authorid = $1`
	var count int
	if err := repository.db.QueryRow(context, query, authorID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_followers")
	}
	return count, nil
}

/*
CountFollowing returns the number of edges sourced from a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - int: Following count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) CountFollowing(context context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM follow WHERE followerid = $1`
	var count int
	if err := repository.db.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_following")
	}
	return count, nil
}
