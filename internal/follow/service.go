// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the follow graph.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new follow [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Follow creates a directed edge from the acting user to the target author.

Description: Rejects reflexive edges with apperr.SelfFollow. The insert is
get-or-create: calling Follow twice for the same pair returns the same edge
and never double-counts downstream feeds or counters.

Parameters:
  - context: context.Context
  - followerID: string (Acting user UUID)
  - authorID: string (Target author UUID)

Returns:
  - *Edge: The existing or newly created edge
  - error: Self-follow rejection or persistence failures
*/
func (service *Service) Follow(context context.Context, followerID, authorID string) (*Edge, error) {
	if followerID == authorID {
		return nil, apperr.SelfFollow()
	}

	edge := &Edge{
		ID:         uuid.New(),
		FollowerID: followerID,
		AuthorID:   authorID,
	}

	if err := service.repo.Create(context, edge); err != nil {
		return nil, err
	}

	// The insert is a no-op when the pair already exists, so re-read the row
	// to return the canonical edge in both cases.
	stored, err := service.repo.Find(context, followerID, authorID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_followed_author",
		slog.String("follower_id", followerID),
		slog.String("author_id", authorID),
	)

	return stored, nil
}

/*
Unfollow removes the edge from the acting user to the target author.

Description: Idempotent — unfollowing an author the user does not follow is
a no-op, not an error.

Parameters:
  - context: context.Context
  - followerID: string
  - authorID: string

Returns:
  - error: Persistence failures
*/
func (service *Service) Unfollow(context context.Context, followerID, authorID string) error {
	if err := service.repo.Delete(context, followerID, authorID); err != nil {
		return err
	}

	service.logger.Info("user_unfollowed_author",
		slog.String("follower_id", followerID),
		slog.String("author_id", authorID),
	)

	return nil
}

/*
IsFollowing reports whether the acting user currently follows the author.

Parameters:
  - context: context.Context
  - followerID, authorID: string

Returns:
  - bool: Edge presence
  - error: Retrieval failures
*/
func (service *Service) IsFollowing(context context.Context, followerID, authorID string) (bool, error) {
	return service.repo.Exists(context, followerID, authorID)
}

// CountFollowers returns how many users follow the given author.
func (service *Service) CountFollowers(context context.Context, authorID string) (int, error) {
	return service.repo.CountFollowers(context, authorID)
}

// CountFollowing returns how many authors the given user follows.
func (service *Service) CountFollowing(context context.Context, userID string) (int, error) {
	return service.repo.CountFollowing(context, userID)
}

/*
Stats aggregates the social counters for a profile page.

Description: IsFollowing is computed only when a viewer identity is supplied;
anonymous viewers always see false.

Parameters:
  - context: context.Context
  - authorID: string (Profile owner)
  - viewerID: string (Acting user UUID, empty for anonymous)

Returns:
  - *Stats: Aggregated counters
  - error: Retrieval failures
*/
func (service *Service) Stats(context context.Context, authorID, viewerID string) (*Stats, error) {
	followers, err := service.repo.CountFollowers(context, authorID)
	if err != nil {
		return nil, err
	}

	following, err := service.repo.CountFollowing(context, authorID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Followers: followers, Following: following}

	if viewerID != "" && viewerID != authorID {
		isFollowing, err := service.repo.Exists(context, viewerID, authorID)
		if err != nil {
			return nil, err
		}
		stats.IsFollowing = isFollowing
	}

	return stats, nil
}
