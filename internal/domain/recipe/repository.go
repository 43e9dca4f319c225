package recipe

import (
	"context"

	"github.com/google/uuid"
)

// RecipeRepository defines the interface for recipe persistence.
// All lookups are scoped by owner: a recipe owned by another user is
// reported as not found, never as forbidden.
type RecipeRepository interface {
	// Create persists a new recipe together with its associations
	Create(ctx context.Context, r *Recipe) error

	// Update persists changes to a recipe and replaces its associations
	Update(ctx context.Context, r *Recipe) error

	// DeleteForOwner deletes a recipe owned by the given user
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// FindByIDForOwner finds a recipe by ID with tags and ingredients loaded
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Recipe, error)

	// FindAllForOwner returns the owner's recipes, newest first
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter RecipeFilter) ([]Recipe, int64, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// Create persists a new tag
	Create(ctx context.Context, t *Tag) error

	// Update persists changes to a tag
	Update(ctx context.Context, t *Tag) error

	// DeleteForOwner deletes a tag owned by the given user
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// FindByIDForOwner finds a tag by ID
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Tag, error)

	// FindByNameForOwner finds a tag by exact name
	FindByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (*Tag, error)

	// GetOrCreateByName returns the owner's tag with the given name,
	// creating it when missing. Safe under concurrent creation of the
	// same name.
	GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*Tag, error)

	// FindAllForOwner returns the owner's tags ordered by name descending
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter LabelFilter) ([]Tag, int64, error)
}

// IngredientRepository defines the interface for ingredient persistence
type IngredientRepository interface {
	// Create persists a new ingredient
	Create(ctx context.Context, i *Ingredient) error

	// Update persists changes to an ingredient
	Update(ctx context.Context, i *Ingredient) error

	// DeleteForOwner deletes an ingredient owned by the given user
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// FindByIDForOwner finds an ingredient by ID
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Ingredient, error)

	// FindByNameForOwner finds an ingredient by exact name
	FindByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (*Ingredient, error)

	// GetOrCreateByName returns the owner's ingredient with the given
	// name, creating it when missing
	GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*Ingredient, error)

	// FindAllForOwner returns the owner's ingredients ordered by name descending
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter LabelFilter) ([]Ingredient, int64, error)
}

// RecipeFilter contains filter options for querying recipes
type RecipeFilter struct {
	// Restrict to recipes carrying any of these tags
	TagIDs []uuid.UUID

	// Restrict to recipes carrying any of these ingredients
	IngredientIDs []uuid.UUID

	// Sorting, validated against a whitelist by the repository
	OrderBy  string
	OrderDir string

	// Pagination
	Page     int
	PageSize int
}

// NewRecipeFilter creates a RecipeFilter with default values
func NewRecipeFilter() RecipeFilter {
	return RecipeFilter{
		OrderBy:  "created_at",
		OrderDir: "desc",
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f RecipeFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f RecipeFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// LabelFilter contains filter options for querying tags and ingredients
type LabelFilter struct {
	// Only return labels assigned to at least one recipe
	AssignedOnly bool

	// Pagination
	Page     int
	PageSize int
}

// NewLabelFilter creates a LabelFilter with default values
func NewLabelFilter() LabelFilter {
	return LabelFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f LabelFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f LabelFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
