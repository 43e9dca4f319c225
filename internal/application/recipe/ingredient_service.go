package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IngredientService handles ingredient operations for authenticated users
type IngredientService struct {
	ingredientRepo recipe.IngredientRepository
	logger         *zap.Logger
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(ingredientRepo recipe.IngredientRepository, logger *zap.Logger) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// List returns the owner's ingredients, name-descending
func (s *IngredientService) List(ctx context.Context, ownerID uuid.UUID, filter recipe.LabelFilter) (*IngredientListResult, error) {
	ingredients, total, err := s.ingredientRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("Failed to list ingredients", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list ingredients")
	}

	dtos := make([]IngredientDTO, len(ingredients))
	for i, ing := range ingredients {
		dtos[i] = IngredientDTO{ID: ing.ID, Name: ing.Name}
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &IngredientListResult{
		Ingredients: dtos,
		Total:       total,
		Page:        filter.Page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}, nil
}

// Rename changes the name of one of the owner's ingredients
func (s *IngredientService) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (*IngredientDTO, error) {
	ing, err := s.ingredientRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INGREDIENT_NOT_FOUND", "Ingredient not found")
		}
		s.logger.Error("Failed to find ingredient", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find ingredient")
	}

	if err := ing.Rename(name); err != nil {
		return nil, err
	}

	if err := s.ingredientRepo.Update(ctx, ing); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("NAME_EXISTS", "An ingredient with this name already exists")
		}
		s.logger.Error("Failed to update ingredient", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update ingredient")
	}

	s.logger.Info("Ingredient renamed", zap.String("ingredient_id", ing.ID.String()))

	return &IngredientDTO{ID: ing.ID, Name: ing.Name}, nil
}

// Delete removes one of the owner's ingredients
func (s *IngredientService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.ingredientRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INGREDIENT_NOT_FOUND", "Ingredient not found")
		}
		s.logger.Error("Failed to delete ingredient", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete ingredient")
	}

	s.logger.Info("Ingredient deleted", zap.String("ingredient_id", id.String()))

	return nil
}
