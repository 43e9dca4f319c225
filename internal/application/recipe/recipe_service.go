package recipe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"time"

	// Registered decoders for upload validation
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// imageExtensions maps accepted upload content types to file extensions
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// downloadURLTTL is how long presigned image URLs stay valid
const downloadURLTTL = 15 * time.Minute

// RecipeService handles recipe operations for authenticated users
type RecipeService struct {
	recipeRepo     recipe.RecipeRepository
	tagRepo        recipe.TagRepository
	ingredientRepo recipe.IngredientRepository
	storage        ImageStorage
	logger         *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo recipe.RecipeRepository,
	tagRepo recipe.TagRepository,
	ingredientRepo recipe.IngredientRepository,
	storage ImageStorage,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		storage:        storage,
		logger:         logger,
	}
}

// Create creates a recipe for the owner, creating any missing labels
func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, input CreateRecipeInput) (*RecipeDTO, error) {
	rec, err := recipe.NewRecipe(ownerID, input.Title, input.TimeMinutes, input.Price)
	if err != nil {
		return nil, err
	}

	rec.SetDescription(input.Description)
	if err := rec.SetLink(input.Link); err != nil {
		return nil, err
	}

	tags, err := s.reconcileTags(ctx, ownerID, input.Tags)
	if err != nil {
		return nil, err
	}
	rec.SetTags(tags)

	ingredients, err := s.reconcileIngredients(ctx, ownerID, input.Ingredients)
	if err != nil {
		return nil, err
	}
	rec.SetIngredients(ingredients)

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to create recipe", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create recipe")
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", rec.ID.String()),
		zap.String("owner_id", ownerID.String()))

	return toRecipeDTO(rec), nil
}

// GetByID retrieves one of the owner's recipes with associations loaded
func (s *RecipeService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*RecipeDTO, error) {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toRecipeDTO(rec), nil
}

// List returns the owner's recipes, filtered and paginated
func (s *RecipeService) List(ctx context.Context, ownerID uuid.UUID, filter recipe.RecipeFilter) (*RecipeListResult, error) {
	recipes, total, err := s.recipeRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("Failed to list recipes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list recipes")
	}

	dtos := make([]RecipeDTO, len(recipes))
	for i := range recipes {
		dtos[i] = *toRecipeDTO(&recipes[i])
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &RecipeListResult{
		Recipes:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update to one of the owner's recipes.
// Omitted label lists are left untouched; empty lists clear them.
func (s *RecipeService) Update(ctx context.Context, ownerID uuid.UUID, input UpdateRecipeInput) (*RecipeDTO, error) {
	rec, err := s.findOwned(ctx, ownerID, input.ID)
	if err != nil {
		return nil, err
	}

	title := rec.Title
	if input.Title != nil {
		title = *input.Title
	}
	timeMinutes := rec.TimeMinutes
	if input.TimeMinutes != nil {
		timeMinutes = *input.TimeMinutes
	}
	price := rec.Price
	if input.Price != nil {
		price = *input.Price
	}
	if err := rec.Update(title, timeMinutes, price); err != nil {
		return nil, err
	}

	if input.Description != nil {
		rec.SetDescription(*input.Description)
	}
	if input.Link != nil {
		if err := rec.SetLink(*input.Link); err != nil {
			return nil, err
		}
	}

	if input.Tags != nil {
		tags, err := s.reconcileTags(ctx, ownerID, *input.Tags)
		if err != nil {
			return nil, err
		}
		rec.SetTags(tags)
	}
	if input.Ingredients != nil {
		ingredients, err := s.reconcileIngredients(ctx, ownerID, *input.Ingredients)
		if err != nil {
			return nil, err
		}
		rec.SetIngredients(ingredients)
	}

	if err := s.recipeRepo.Update(ctx, rec); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
		}
		s.logger.Error("Failed to update recipe", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update recipe")
	}

	s.logger.Info("Recipe updated", zap.String("recipe_id", rec.ID.String()))

	return toRecipeDTO(rec), nil
}

// Delete removes one of the owner's recipes
func (s *RecipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
		}
		s.logger.Error("Failed to delete recipe", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete recipe")
	}

	if rec.HasImage() {
		if err := s.storage.DeleteObject(ctx, rec.ImageKey); err != nil {
			// Orphaned object only; the recipe row is gone
			s.logger.Warn("Failed to delete recipe image object",
				zap.String("storage_key", rec.ImageKey),
				zap.Error(err))
		}
	}

	s.logger.Info("Recipe deleted", zap.String("recipe_id", id.String()))

	return nil
}

// UploadImage validates and stores an image for one of the owner's
// recipes, replacing any previous image
func (s *RecipeService) UploadImage(ctx context.Context, ownerID, id uuid.UUID, data []byte, contentType string) (*RecipeDTO, error) {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	ext, err := validateImage(data, contentType)
	if err != nil {
		return nil, err
	}

	storageKey := path.Join("recipes", rec.ID.String(), uuid.New().String()+ext)
	if err := s.storage.Upload(ctx, storageKey, data, contentType); err != nil {
		s.logger.Error("Failed to upload recipe image", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store image")
	}

	previousKey := rec.ImageKey
	rec.SetImageKey(storageKey)

	if err := s.recipeRepo.Update(ctx, rec); err != nil {
		// Roll back the stored object so it cannot leak
		if delErr := s.storage.DeleteObject(ctx, storageKey); delErr != nil {
			s.logger.Warn("Failed to clean up image after failed update", zap.Error(delErr))
		}
		s.logger.Error("Failed to record recipe image", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to store image")
	}

	if previousKey != "" {
		if err := s.storage.DeleteObject(ctx, previousKey); err != nil {
			s.logger.Warn("Failed to delete previous recipe image",
				zap.String("storage_key", previousKey),
				zap.Error(err))
		}
	}

	s.logger.Info("Recipe image uploaded",
		zap.String("recipe_id", rec.ID.String()),
		zap.String("storage_key", storageKey))

	return toRecipeDTO(rec), nil
}

// GetImageURL returns a presigned download URL for a recipe's image
func (s *RecipeService) GetImageURL(ctx context.Context, ownerID, id uuid.UUID) (*ImageURLResult, error) {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if !rec.HasImage() {
		return nil, shared.NewDomainError("IMAGE_NOT_FOUND", "Recipe has no image")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, rec.ImageKey, downloadURLTTL)
	if err != nil {
		s.logger.Error("Failed to generate image download URL", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate image URL")
	}

	return &ImageURLResult{URL: url, ExpiresAt: expiresAt}, nil
}

// findOwned loads an owned recipe, reporting other users' recipes as
// not found
func (s *RecipeService) findOwned(ctx context.Context, ownerID, id uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.recipeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
		}
		s.logger.Error("Failed to find recipe", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find recipe")
	}
	return rec, nil
}

// reconcileTags resolves tag names to owned tags, creating missing
// ones. Duplicate names keep their first occurrence.
func (s *RecipeService) reconcileTags(ctx context.Context, ownerID uuid.UUID, names []string) ([]recipe.Tag, error) {
	tags := make([]recipe.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		t, err := s.tagRepo.GetOrCreateByName(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	return tags, nil
}

// reconcileIngredients resolves ingredient names to owned ingredients,
// creating missing ones
func (s *RecipeService) reconcileIngredients(ctx context.Context, ownerID uuid.UUID, names []string) ([]recipe.Ingredient, error) {
	ingredients := make([]recipe.Ingredient, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		ing, err := s.ingredientRepo.GetOrCreateByName(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, nil
}

// validateImage checks the declared content type and verifies the
// payload really decodes as an image. Returns the file extension to
// store the object under.
func validateImage(data []byte, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", shared.NewDomainError("INVALID_IMAGE",
			fmt.Sprintf("Unsupported image content type %q", contentType))
	}
	if len(data) == 0 {
		return "", shared.NewDomainError("INVALID_IMAGE", "Image payload is empty")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", shared.NewDomainError("INVALID_IMAGE", "Payload is not a decodable image")
	}
	return ext, nil
}

// toRecipeDTO converts a domain Recipe to its DTO
func toRecipeDTO(rec *recipe.Recipe) *RecipeDTO {
	tags := make([]TagDTO, len(rec.Tags))
	for i, t := range rec.Tags {
		tags[i] = TagDTO{ID: t.ID, Name: t.Name}
	}
	ingredients := make([]IngredientDTO, len(rec.Ingredients))
	for i, ing := range rec.Ingredients {
		ingredients[i] = IngredientDTO{ID: ing.ID, Name: ing.Name}
	}

	return &RecipeDTO{
		ID:          rec.ID,
		Title:       rec.Title,
		TimeMinutes: rec.TimeMinutes,
		Price:       rec.Price,
		Description: rec.Description,
		Link:        rec.Link,
		HasImage:    rec.HasImage(),
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
