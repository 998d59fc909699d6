// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package groups

import (
	"context"
	"log/slog"

	"github.com/taibuivan/pulse/internal/platform/validate"
	"github.com/taibuivan/pulse/pkg/slug"
	"github.com/taibuivan/pulse/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for communities.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new community [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
ListGroups retrieves a paginated list of communities.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Group: List of communities
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListGroups(context context.Context, limit, offset int) ([]*Group, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
GetGroup retrieves a community by its slug.

Parameters:
  - context: context.Context
  - groupSlug: string

Returns:
  - *Group: Hydrated community entity
  - error: apperr.NotFound if missing
*/
func (service *Service) GetGroup(context context.Context, groupSlug string) (*Group, error) {
	return service.repo.FindBySlug(context, groupSlug)
}

// CreateGroupInput holds the fields required to register a community.
type CreateGroupInput struct {
	Title       string
	Description string
}

/*
CreateGroup registers a new community with an auto-generated slug.

Description: Slug identity is immutable once created; a duplicate slug is
rejected by the storage layer as a conflict.

Parameters:
  - context: context.Context
  - input: CreateGroupInput

Returns:
  - *Group: Created entity
  - error: Validation or persistence failures
*/
func (service *Service) CreateGroup(context context.Context, input CreateGroupInput) (*Group, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	group := &Group{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
	}

	if err := service.repo.Create(context, group); err != nil {
		return nil, err
	}

	service.logger.Info("community_created",
		slog.String("group_id", group.ID),
		slog.String("slug", group.Slug),
	)

	return group, nil
}
