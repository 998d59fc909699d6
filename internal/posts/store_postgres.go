// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pulse/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// postListQuery is the shared SELECT head for all post listings: it joins the
// author for the denormalized username, the optional community for its slug,
// and computes the total via a window function in the same round trip.
const postListQuery = `
	SELECT
		p.id, p.authorid, a.username, p.communityid, c.slug,
		p.text, p.imagepath, p.pubdate,
		COUNT(*) OVER() AS total
	FROM post p
	JOIN account a ON p.authorid = a.id
	LEFT JOIN community c ON p.communityid = c.id
`

// # Post Retrieval

/*
FindByID retrieves a single post with denormalized author/community fields.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	const query = `
		SELECT p.id, p.authorid, a.username, p.communityid, c.slug, p.text, p.imagepath, p.pubdate
		FROM post p
		JOIN account a ON p.authorid = a.id
		LEFT JOIN community c ON p.communityid = c.id
		WHERE p.id = $1
	`
	post := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&post.ID, &post.AuthorID, &post.AuthorUsername, &post.GroupID, &post.GroupSlug,
		&post.Text, &post.ImagePath, &post.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post_by_id")
	}
	return post, nil
}

/*
ListAll returns every post ordered newest first.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total post count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAll(context context.Context, limit, offset int) ([]*Post, int, error) {
	const query = postListQuery + `
		ORDER BY p.pubdate DESC
		LIMIT $1 OFFSET $2
	`
	return repository.listPosts(context, query, limit, offset)
}

/*
ListByGroup returns the posts bound to a community, newest first.

Parameters:
  - context: context.Context
  - groupID: string
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByGroup(context context.Context, groupID string, limit, offset int) ([]*Post, int, error) {
	const query = postListQuery + `
		WHERE p.communityid = $1
		ORDER BY p.pubdate DESC
		LIMIT $2 OFFSET $3
	`
	return repository.listPosts(context, query, groupID, limit, offset)
}

/*
ListByAuthor returns the posts published by one author, newest first.

Parameters:
  - context: context.Context
  - authorID: string
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByAuthor(context context.Context, authorID string, limit, offset int) ([]*Post, int, error) {
	const query = postListQuery + `
		WHERE p.authorid = $1
		ORDER BY p.pubdate DESC
		LIMIT $2 OFFSET $3
	`
	return repository.listPosts(context, query, authorID, limit, offset)
}

/*
ListFeed returns the posts authored by anyone the user follows, newest first.

Description: The membership test runs against the follow table, so the feed
reacts immediately to follow/unfollow without any materialized state.

Parameters:
  - context: context.Context
  - followerID: string
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListFeed(context context.Context, followerID string, limit, offset int) ([]*Post, int, error) {
	const query = postListQuery + `
		WHERE p.authorid IN (SELECT authorid FROM follow WHERE followerid = $1)
		ORDER BY p.pubdate DESC
		LIMIT $2 OFFSET $3
	`
	return repository.listPosts(context, query, followerID, limit, offset)
}

/*
CountByAuthor returns the number of posts published by an author.

Parameters:
  - context: context.Context
  - authorID: string

Returns:
  - int: Post count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) CountByAuthor(context context.Context, authorID string) (int, error) {
	const query = `SELECT COUNT(*) FROM post WHERE authorid = $1`
	var count int
	if err := repository.db.QueryRow(context, query, authorID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_posts_by_author")
	}
	return count, nil
}

// listPosts runs a post listing query and hydrates the result rows.
func (repository *PostgresRepository) listPosts(context context.Context, query string, args ...any) ([]*Post, int, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var listing []*Post
	var total int
	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorUsername, &post.GroupID, &post.GroupSlug,
			&post.Text, &post.ImagePath, &post.PubDate, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		listing = append(listing, post)
	}

	return listing, total, nil
}

// # Post Mutation

/*
Create inserts a new post. The publication timestamp is assigned by the
database clock so it is consistent across application instances.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO post (id, authorid, communityid, text, imagepath, pubdate)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING pubdate
	`
	err := repository.db.QueryRow(context, query,
		post.ID, post.AuthorID, post.GroupID, post.Text, post.ImagePath,
	).Scan(&post.PubDate)

	return dberr.Wrap(err, "create_post")
}

/*
Update overwrites the mutable fields of a post.

Description: The statement deliberately omits the pubdate column — an edit
must never reorder the timeline.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.NotFound if the post vanished, or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE post
		SET text = $2, communityid = $3, imagepath = $4
		WHERE id = $1
		RETURNING pubdate
	`
	err := repository.db.QueryRow(context, query,
		post.ID, post.Text, post.GroupID, post.ImagePath,
	).Scan(&post.PubDate)

	return dberr.Wrap(err, "update_post")
}

// # Comments

/*
CreateComment inserts a new comment and hydrates the denormalized author
username in the same statement.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		WITH inserted AS (
			INSERT INTO comment (id, postid, authorid, text, createdat)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING authorid, createdat
		)
		SELECT i.createdat, a.username
		FROM inserted i
		JOIN account a ON i.authorid = a.id
	`
	err := repository.db.QueryRow(context, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Text,
	).Scan(&comment.CreatedAt, &comment.AuthorUsername)

	return dberr.Wrap(err, "create_comment")
}

/*
ListComments returns every comment on a post, oldest first.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - []*Comment: Comments in conversation order
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListComments(context context.Context, postID string) ([]*Comment, error) {
	const query = `
		SELECT m.id, m.postid, m.authorid, a.username, m.text, m.createdat
		FROM comment m
		JOIN account a ON m.authorid = a.id
		WHERE m.postid = $1
		ORDER BY m.createdat ASC
	`
	rows, err := repository.db.Query(context, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.AuthorUsername,
			&comment.Text, &comment.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, nil
}
