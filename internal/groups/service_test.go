// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package groups_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pulse/internal/groups"
	"github.com/taibuivan/pulse/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository keyed by slug, mirroring the
// unique index on the real table.
type fakeRepository struct {
	bySlug map[string]*groups.Group
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: make(map[string]*groups.Group)}
}

func (repository *fakeRepository) List(_ context.Context, limit, offset int) ([]*groups.Group, int, error) {
	all := make([]*groups.Group, 0, len(repository.bySlug))
	for _, group := range repository.bySlug {
		all = append(all, group)
	}

	total := len(all)
	if offset >= total {
		return []*groups.Group{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*groups.Group, error) {
	group, exists := repository.bySlug[slug]
	if !exists {
		return nil, apperr.NotFound("Community")
	}
	return group, nil
}

func (repository *fakeRepository) Create(_ context.Context, group *groups.Group) error {
	if _, exists := repository.bySlug[group.Slug]; exists {
		return apperr.Conflict("Slug already taken")
	}
	repository.bySlug[group.Slug] = group
	return nil
}

func newTestService() (*groups.Service, *fakeRepository) {
	repository := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return groups.NewService(repository, logger), repository
}

/*
TestService_CreateGroup covers validation and slug generation from the title.
*/
func TestService_CreateGroup(t *testing.T) {
	tests := []struct {
		name     string
		input    groups.CreateGroupInput
		wantSlug string
		wantCode string
	}{
		{
			name:     "simple_title",
			input:    groups.CreateGroupInput{Title: "Go Lang", Description: "All things Go"},
			wantSlug: "go-lang",
		},
		{
			name:     "accented_title",
			input:    groups.CreateGroupInput{Title: "Café Culture", Description: "Coffee talk"},
			wantSlug: "cafe-culture",
		},
		{
			name:     "missing_title",
			input:    groups.CreateGroupInput{Description: "No title"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "missing_description",
			input:    groups.CreateGroupInput{Title: "Go Lang"},
			wantCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()

			group, err := service.CreateGroup(context.Background(), tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Title, group.Title)
			assert.Equal(t, tt.wantSlug, group.Slug)
			assert.NotEmpty(t, group.ID)
		})
	}
}

/*
TestService_CreateGroup_DuplicateSlug verifies that two titles collapsing to
the same slug surface as a conflict.
*/
func TestService_CreateGroup_DuplicateSlug(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateGroup(context.Background(), groups.CreateGroupInput{
		Title:       "Go Lang",
		Description: "First",
	})
	require.NoError(t, err)

	_, err = service.CreateGroup(context.Background(), groups.CreateGroupInput{
		Title:       "Go lang",
		Description: "Second",
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_GetGroup covers lookup by slug and the not-found path.
*/
func TestService_GetGroup(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateGroup(context.Background(), groups.CreateGroupInput{
		Title:       "Go Lang",
		Description: "All things Go",
	})
	require.NoError(t, err)

	found, err := service.GetGroup(context.Background(), "go-lang")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetGroup(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
