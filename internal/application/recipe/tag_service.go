package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TagService handles tag operations for authenticated users
type TagService struct {
	tagRepo recipe.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(tagRepo recipe.TagRepository, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// List returns the owner's tags, name-descending
func (s *TagService) List(ctx context.Context, ownerID uuid.UUID, filter recipe.LabelFilter) (*TagListResult, error) {
	tags, total, err := s.tagRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("Failed to list tags", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tags")
	}

	dtos := make([]TagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = TagDTO{ID: t.ID, Name: t.Name}
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &TagListResult{
		Tags:       dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Rename changes the name of one of the owner's tags
func (s *TagService) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (*TagDTO, error) {
	tag, err := s.tagRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TAG_NOT_FOUND", "Tag not found")
		}
		s.logger.Error("Failed to find tag", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tag")
	}

	if err := tag.Rename(name); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("NAME_EXISTS", "A tag with this name already exists")
		}
		s.logger.Error("Failed to update tag", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tag")
	}

	s.logger.Info("Tag renamed", zap.String("tag_id", tag.ID.String()))

	return &TagDTO{ID: tag.ID, Name: tag.Name}, nil
}

// Delete removes one of the owner's tags. Recipes keep their other tags.
func (s *TagService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.tagRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TAG_NOT_FOUND", "Tag not found")
		}
		s.logger.Error("Failed to delete tag", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete tag")
	}

	s.logger.Info("Tag deleted", zap.String("tag_id", id.String()))

	return nil
}
