// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pulse/internal/follow"
	"github.com/taibuivan/pulse/internal/groups"
	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/internal/posts"
	"github.com/taibuivan/pulse/internal/users/auth"
	"github.com/taibuivan/pulse/pkg/pointer"
)

// # Test Doubles

// fakeRepository is an in-memory Repository. Posts are held newest first,
// matching the ordering every SQL listing applies.
type fakeRepository struct {
	posts    []*posts.Post
	comments []*posts.Comment

	// following maps a follower ID to the author IDs they follow, standing
	// in for the join against the follow table.
	following map[string][]string

	clock time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		following: make(map[string][]string),
		clock:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (repository *fakeRepository) tick() time.Time {
	repository.clock = repository.clock.Add(time.Minute)
	return repository.clock
}

func (repository *fakeRepository) Create(_ context.Context, post *posts.Post) error {
	stored := *post
	stored.PubDate = repository.tick()
	repository.posts = append([]*posts.Post{&stored}, repository.posts...)
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*posts.Post, error) {
	for _, stored := range repository.posts {
		if stored.ID == id {
			found := *stored
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

// Update overwrites only the mutable columns, like the SQL UPDATE does.
// The stored publication timestamp is never touched.
func (repository *fakeRepository) Update(_ context.Context, post *posts.Post) error {
	for _, stored := range repository.posts {
		if stored.ID == post.ID {
			stored.Text = post.Text
			stored.GroupID = post.GroupID
			stored.ImagePath = post.ImagePath
			post.PubDate = stored.PubDate
			return nil
		}
	}
	return apperr.NotFound("Post")
}

func (repository *fakeRepository) list(filter func(*posts.Post) bool, limit, offset int) ([]*posts.Post, int, error) {
	matching := make([]*posts.Post, 0, len(repository.posts))
	for _, stored := range repository.posts {
		if filter(stored) {
			matching = append(matching, stored)
		}
	}

	total := len(matching)
	if offset >= total {
		return []*posts.Post{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

func (repository *fakeRepository) ListAll(_ context.Context, limit, offset int) ([]*posts.Post, int, error) {
	return repository.list(func(*posts.Post) bool { return true }, limit, offset)
}

func (repository *fakeRepository) ListByGroup(_ context.Context, groupID string, limit, offset int) ([]*posts.Post, int, error) {
	return repository.list(func(post *posts.Post) bool {
		return post.GroupID != nil && *post.GroupID == groupID
	}, limit, offset)
}

func (repository *fakeRepository) ListByAuthor(_ context.Context, authorID string, limit, offset int) ([]*posts.Post, int, error) {
	return repository.list(func(post *posts.Post) bool {
		return post.AuthorID == authorID
	}, limit, offset)
}

func (repository *fakeRepository) ListFeed(_ context.Context, followerID string, limit, offset int) ([]*posts.Post, int, error) {
	followed := make(map[string]bool)
	for _, authorID := range repository.following[followerID] {
		followed[authorID] = true
	}
	return repository.list(func(post *posts.Post) bool {
		return followed[post.AuthorID]
	}, limit, offset)
}

func (repository *fakeRepository) CountByAuthor(_ context.Context, authorID string) (int, error) {
	count := 0
	for _, stored := range repository.posts {
		if stored.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (repository *fakeRepository) CreateComment(_ context.Context, comment *posts.Comment) error {
	stored := *comment
	stored.CreatedAt = repository.tick()
	repository.comments = append(repository.comments, &stored)
	comment.CreatedAt = stored.CreatedAt
	return nil
}

func (repository *fakeRepository) ListComments(_ context.Context, postID string) ([]*posts.Comment, error) {
	matching := make([]*posts.Comment, 0)
	for _, stored := range repository.comments {
		if stored.PostID == postID {
			matching = append(matching, stored)
		}
	}
	return matching, nil
}

type fakeGroupDirectory struct {
	bySlug map[string]*groups.Group
}

func (directory *fakeGroupDirectory) GetGroup(_ context.Context, slug string) (*groups.Group, error) {
	group, exists := directory.bySlug[slug]
	if !exists {
		return nil, apperr.NotFound("Community")
	}
	return group, nil
}

type fakeUserDirectory struct {
	byUsername map[string]*auth.User
}

func (directory *fakeUserDirectory) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	user, exists := directory.byUsername[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

type fakeSocialGraph struct {
	stats map[string]*follow.Stats
}

func (graph *fakeSocialGraph) Stats(_ context.Context, authorID, _ string) (*follow.Stats, error) {
	if stats, exists := graph.stats[authorID]; exists {
		return stats, nil
	}
	return &follow.Stats{}, nil
}

type fixture struct {
	service    *posts.Service
	repository *fakeRepository
	groups     *fakeGroupDirectory
	users      *fakeUserDirectory
	social     *fakeSocialGraph
}

func newFixture() *fixture {
	repository := newFakeRepository()
	groupDirectory := &fakeGroupDirectory{bySlug: map[string]*groups.Group{
		"go-lang": {ID: "group-1", Title: "Go Lang", Slug: "go-lang"},
	}}
	userDirectory := &fakeUserDirectory{byUsername: map[string]*auth.User{
		"alice": {ID: "user-a", Username: "alice", DisplayName: "Alice"},
		"bob":   {ID: "user-b", Username: "bob"},
	}}
	social := &fakeSocialGraph{stats: make(map[string]*follow.Stats)}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := posts.NewService(repository, groupDirectory, userDirectory, social, logger)

	return &fixture{
		service:    service,
		repository: repository,
		groups:     groupDirectory,
		users:      userDirectory,
		social:     social,
	}
}

// # Creation

/*
TestService_CreatePost covers text validation and community resolution.
*/
func TestService_CreatePost(t *testing.T) {
	tests := []struct {
		name      string
		input     posts.CreatePostInput
		wantCode  string
		wantGroup *string
	}{
		{
			name:  "plain_post",
			input: posts.CreatePostInput{Text: "hello world"},
		},
		{
			name:      "grouped_post",
			input:     posts.CreatePostInput{Text: "hello group", GroupSlug: "go-lang"},
			wantGroup: pointer.To("group-1"),
		},
		{
			name:     "empty_text",
			input:    posts.CreatePostInput{Text: "   "},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "unknown_community",
			input:    posts.CreatePostInput{Text: "hello", GroupSlug: "missing"},
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			post, err := f.service.CreatePost(context.Background(), "user-a", tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, tt.wantCode, appError.Code)
				assert.Empty(t, f.repository.posts)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, post)
			assert.Equal(t, "user-a", post.AuthorID)
			assert.False(t, post.PubDate.IsZero())
			assert.Equal(t, tt.wantGroup, post.GroupID)
		})
	}
}

// # Editing

/*
TestService_EditPost_OnlyAuthor verifies that a non-author edit is rejected
and leaves the stored post untouched.
*/
func TestService_EditPost_OnlyAuthor(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "original"})
	require.NoError(t, err)

	edited, err := f.service.EditPost(context.Background(), "user-b", created.ID, posts.EditPostInput{Text: "hijacked"})

	require.Error(t, err)
	assert.Nil(t, edited)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)

	stored, err := f.service.GetPost(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Post.Text)
}

/*
TestService_EditPost_PreservesPubDate verifies that editing replaces the text
but never moves the post in the timeline.
*/
func TestService_EditPost_PreservesPubDate(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "original"})
	require.NoError(t, err)

	edited, err := f.service.EditPost(context.Background(), "user-a", created.ID, posts.EditPostInput{Text: "revised"})
	require.NoError(t, err)

	assert.Equal(t, "revised", edited.Text)
	assert.True(t, edited.PubDate.Equal(created.PubDate))
}

/*
TestService_EditPost_PartialFields verifies the partial-update semantics for
the community binding: nil leaves it, empty clears it, a slug rebinds it.
*/
func TestService_EditPost_PartialFields(t *testing.T) {
	tests := []struct {
		name      string
		groupSlug *string
		wantGroup *string
	}{
		{"unchanged_when_nil", nil, pointer.To("group-1")},
		{"cleared_when_empty", pointer.To(""), nil},
		{"rebound_when_slug", pointer.To("go-lang"), pointer.To("group-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			created, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{
				Text:      "original",
				GroupSlug: "go-lang",
			})
			require.NoError(t, err)

			edited, err := f.service.EditPost(context.Background(), "user-a", created.ID, posts.EditPostInput{
				Text:      "revised",
				GroupSlug: tt.groupSlug,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantGroup, edited.GroupID)
		})
	}
}

/*
TestService_EditPost_NotFound verifies the error for a missing post.
*/
func TestService_EditPost_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.EditPost(context.Background(), "user-a", "missing", posts.EditPostInput{Text: "x"})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

// # Comments

/*
TestService_AddComment covers validation, the missing-post case, and the
author stamp on success.
*/
func TestService_AddComment(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "a post"})
	require.NoError(t, err)

	t.Run("empty_text", func(t *testing.T) {
		_, err := f.service.AddComment(context.Background(), "user-b", created.ID, "  ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing_post", func(t *testing.T) {
		_, err := f.service.AddComment(context.Background(), "user-b", "missing", "nice")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("success", func(t *testing.T) {
		comment, err := f.service.AddComment(context.Background(), "user-b", created.ID, "nice")
		require.NoError(t, err)
		assert.Equal(t, "user-b", comment.AuthorID)
		assert.Equal(t, created.ID, comment.PostID)

		comments, err := f.service.ListComments(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}

// # Listings

/*
TestService_ListAll_Pagination walks a 12-post timeline through three pages
of ten.
*/
func TestService_ListAll_Pagination(t *testing.T) {
	f := newFixture()

	for i := 0; i < 12; i++ {
		_, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "post"})
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		offset    int
		wantCount int
	}{
		{"first_page", 0, 10},
		{"second_page", 10, 2},
		{"overflow_page", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, total, err := f.service.ListAll(context.Background(), posts.IndexPageSize, tt.offset)
			require.NoError(t, err)
			assert.Len(t, listing, tt.wantCount)
			assert.Equal(t, 12, total)
		})
	}
}

/*
TestService_ListAll_NewestFirst verifies reverse-chronological ordering.
*/
func TestService_ListAll_NewestFirst(t *testing.T) {
	f := newFixture()

	first, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "first"})
	require.NoError(t, err)
	second, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "second"})
	require.NoError(t, err)

	listing, _, err := f.service.ListAll(context.Background(), posts.IndexPageSize, 0)
	require.NoError(t, err)

	require.Len(t, listing, 2)
	assert.Equal(t, second.ID, listing[0].ID)
	assert.Equal(t, first.ID, listing[1].ID)
}

/*
TestService_ListByGroup verifies that only posts bound to the community are
returned and that ungrouped posts never leak in.
*/
func TestService_ListByGroup(t *testing.T) {
	f := newFixture()

	grouped, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{
		Text:      "grouped",
		GroupSlug: "go-lang",
	})
	require.NoError(t, err)

	_, err = f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "ungrouped"})
	require.NoError(t, err)

	group, listing, total, err := f.service.ListByGroup(context.Background(), "go-lang", posts.GroupPageSize, 0)
	require.NoError(t, err)

	assert.Equal(t, "group-1", group.ID)
	assert.Equal(t, 1, total)
	require.Len(t, listing, 1)
	assert.Equal(t, grouped.ID, listing[0].ID)
}

/*
TestService_ListByGroup_Unknown verifies the error for an unknown slug.
*/
func TestService_ListByGroup_Unknown(t *testing.T) {
	f := newFixture()

	_, _, _, err := f.service.ListByGroup(context.Background(), "missing", posts.GroupPageSize, 0)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Feed

/*
TestService_GetFeed verifies feed membership: only posts by followed authors
appear, and a user following no one gets an empty page.
*/
func TestService_GetFeed(t *testing.T) {
	f := newFixture()

	followed, err := f.service.CreatePost(context.Background(), "user-b", posts.CreatePostInput{Text: "from b"})
	require.NoError(t, err)
	_, err = f.service.CreatePost(context.Background(), "user-c", posts.CreatePostInput{Text: "from c"})
	require.NoError(t, err)

	// a follows b only.
	f.repository.following["user-a"] = []string{"user-b"}

	t.Run("follower_sees_followed_authors_only", func(t *testing.T) {
		listing, total, err := f.service.GetFeed(context.Background(), "user-a", posts.IndexPageSize, 0)
		require.NoError(t, err)

		assert.Equal(t, 1, total)
		require.Len(t, listing, 1)
		assert.Equal(t, followed.ID, listing[0].ID)
	})

	t.Run("no_follows_means_empty_feed", func(t *testing.T) {
		listing, total, err := f.service.GetFeed(context.Background(), "user-d", posts.IndexPageSize, 0)
		require.NoError(t, err)

		assert.Equal(t, 0, total)
		assert.Empty(t, listing)
	})

	t.Run("own_posts_are_not_in_own_feed", func(t *testing.T) {
		_, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "mine"})
		require.NoError(t, err)

		listing, _, err := f.service.GetFeed(context.Background(), "user-a", posts.IndexPageSize, 0)
		require.NoError(t, err)

		for _, post := range listing {
			assert.NotEqual(t, "user-a", post.AuthorID)
		}
	})
}

// # Composition

/*
TestService_Profile verifies the composed profile view: public author fields,
aggregate counts, and the author's page of posts.
*/
func TestService_Profile(t *testing.T) {
	f := newFixture()

	for i := 0; i < 7; i++ {
		_, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "post"})
		require.NoError(t, err)
	}
	f.social.stats["user-a"] = &follow.Stats{Followers: 3, Following: 1, IsFollowing: true}

	view, err := f.service.Profile(context.Background(), "alice", "user-b", posts.ProfilePageSize, 0)
	require.NoError(t, err)

	assert.Equal(t, "alice", view.Author.Username)
	assert.Equal(t, "Alice", view.Author.DisplayName)
	assert.Equal(t, 7, view.PostsCount)
	assert.Equal(t, 3, view.Stats.Followers)
	assert.True(t, view.Stats.IsFollowing)
	assert.Len(t, view.Posts, posts.ProfilePageSize)
	assert.Equal(t, 7, view.Total)
}

/*
TestService_Profile_Unknown verifies the error for an unknown username.
*/
func TestService_Profile_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.service.Profile(context.Background(), "nobody", "", posts.ProfilePageSize, 0)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_GetPost verifies the composed detail view.
*/
func TestService_GetPost(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreatePost(context.Background(), "user-a", posts.CreatePostInput{Text: "a post"})
	require.NoError(t, err)

	_, err = f.service.AddComment(context.Background(), "user-b", created.ID, "first")
	require.NoError(t, err)
	_, err = f.service.AddComment(context.Background(), "user-b", created.ID, "second")
	require.NoError(t, err)

	f.social.stats["user-a"] = &follow.Stats{Followers: 2}

	view, err := f.service.GetPost(context.Background(), created.ID, "user-b")
	require.NoError(t, err)

	assert.Equal(t, created.ID, view.Post.ID)
	assert.Len(t, view.Comments, 2)
	assert.Equal(t, 2, view.Stats.Followers)
}
