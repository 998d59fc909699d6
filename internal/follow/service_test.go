// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pulse/internal/follow"
	"github.com/taibuivan/pulse/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository keyed by (follower, author).
// Like the real storage, it keeps the first edge for a pair and ignores
// duplicate inserts.
type fakeRepository struct {
	edges map[[2]string]*follow.Edge
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{edges: make(map[[2]string]*follow.Edge)}
}

func (repository *fakeRepository) Create(_ context.Context, edge *follow.Edge) error {
	key := [2]string{edge.FollowerID, edge.AuthorID}
	if _, exists := repository.edges[key]; exists {
		return nil
	}
	repository.edges[key] = edge
	return nil
}

func (repository *fakeRepository) Find(_ context.Context, followerID, authorID string) (*follow.Edge, error) {
	edge, exists := repository.edges[[2]string{followerID, authorID}]
	if !exists {
		return nil, apperr.NotFound("Follow")
	}
	return edge, nil
}

func (repository *fakeRepository) Delete(_ context.Context, followerID, authorID string) error {
	delete(repository.edges, [2]string{followerID, authorID})
	return nil
}

func (repository *fakeRepository) Exists(_ context.Context, followerID, authorID string) (bool, error) {
	_, exists := repository.edges[[2]string{followerID, authorID}]
	return exists, nil
}

func (repository *fakeRepository) CountFollowers(_ context.Context, authorID string) (int, error) {
	count := 0
	for key := range repository.edges {
		if key[1] == authorID {
			count++
		}
	}
	return count, nil
}

func (repository *fakeRepository) CountFollowing(_ context.Context, userID string) (int, error) {
	count := 0
	for key := range repository.edges {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

func newTestService() (*follow.Service, *fakeRepository) {
	repository := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return follow.NewService(repository, logger), repository
}

/*
TestService_Follow_SelfRejected verifies that reflexive edges are refused
before touching storage.
*/
func TestService_Follow_SelfRejected(t *testing.T) {
	service, repository := newTestService()

	edge, err := service.Follow(context.Background(), "user-a", "user-a")

	require.Error(t, err)
	assert.Nil(t, edge)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SELF_FOLLOW", appError.Code)
	assert.Empty(t, repository.edges)
}

/*
TestService_Follow_Idempotent verifies that repeating a follow returns the
original edge instead of creating a second one.
*/
func TestService_Follow_Idempotent(t *testing.T) {
	service, repository := newTestService()

	first, err := service.Follow(context.Background(), "user-a", "user-b")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := service.Follow(context.Background(), "user-a", "user-b")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repository.edges, 1)
}

/*
TestService_Unfollow verifies edge removal and that unfollowing an absent
edge is a silent no-op.
*/
func TestService_Unfollow(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Follow(context.Background(), "user-a", "user-b")
	require.NoError(t, err)

	require.NoError(t, service.Unfollow(context.Background(), "user-a", "user-b"))

	isFollowing, err := service.IsFollowing(context.Background(), "user-a", "user-b")
	require.NoError(t, err)
	assert.False(t, isFollowing)

	// Repeating the unfollow must not error.
	require.NoError(t, service.Unfollow(context.Background(), "user-a", "user-b"))
}

/*
TestService_Follow_ReversibleAndDistinct verifies that edges are directed:
A following B says nothing about B following A.
*/
func TestService_Follow_ReversibleAndDistinct(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Follow(context.Background(), "user-a", "user-b")
	require.NoError(t, err)

	reverse, err := service.IsFollowing(context.Background(), "user-b", "user-a")
	require.NoError(t, err)
	assert.False(t, reverse)

	forward, err := service.IsFollowing(context.Background(), "user-a", "user-b")
	require.NoError(t, err)
	assert.True(t, forward)
}

/*
TestService_Stats verifies counter aggregation and the viewer-dependent
IsFollowing flag.
*/
func TestService_Stats(t *testing.T) {
	service, _ := newTestService()

	// b and c follow a; a follows c.
	_, err := service.Follow(context.Background(), "user-b", "user-a")
	require.NoError(t, err)
	_, err = service.Follow(context.Background(), "user-c", "user-a")
	require.NoError(t, err)
	_, err = service.Follow(context.Background(), "user-a", "user-c")
	require.NoError(t, err)

	tests := []struct {
		name            string
		viewerID        string
		wantIsFollowing bool
	}{
		{"anonymous_viewer", "", false},
		{"following_viewer", "user-b", true},
		{"non_following_viewer", "user-d", false},
		{"self_viewer", "user-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := service.Stats(context.Background(), "user-a", tt.viewerID)
			require.NoError(t, err)

			assert.Equal(t, 2, stats.Followers)
			assert.Equal(t, 1, stats.Following)
			assert.Equal(t, tt.wantIsFollowing, stats.IsFollowing)
		})
	}
}
