package recipe

import (
	"github.com/recipebox/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRecipe     = "Recipe"
	AggregateTypeTag        = "Tag"
	AggregateTypeIngredient = "Ingredient"
)

// Recipe domain event types
const (
	EventTypeRecipeCreated       = "RecipeCreated"
	EventTypeRecipeUpdated       = "RecipeUpdated"
	EventTypeRecipeDeleted       = "RecipeDeleted"
	EventTypeRecipeImageUploaded = "RecipeImageUploaded"
	EventTypeTagCreated          = "TagCreated"
	EventTypeIngredientCreated   = "IngredientCreated"
)

// RecipeCreatedEvent is published when a recipe is created
type RecipeCreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewRecipeCreatedEvent creates a new RecipeCreatedEvent
func NewRecipeCreatedEvent(r *Recipe) *RecipeCreatedEvent {
	return &RecipeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, AggregateTypeRecipe, r.ID, r.OwnerID),
		Title:           r.Title,
	}
}

// RecipeUpdatedEvent is published when a recipe's core fields change
type RecipeUpdatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewRecipeUpdatedEvent creates a new RecipeUpdatedEvent
func NewRecipeUpdatedEvent(r *Recipe) *RecipeUpdatedEvent {
	return &RecipeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeUpdated, AggregateTypeRecipe, r.ID, r.OwnerID),
		Title:           r.Title,
	}
}

// RecipeDeletedEvent is published when a recipe is deleted
type RecipeDeletedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// NewRecipeDeletedEvent creates a new RecipeDeletedEvent
func NewRecipeDeletedEvent(r *Recipe) *RecipeDeletedEvent {
	return &RecipeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeDeleted, AggregateTypeRecipe, r.ID, r.OwnerID),
		Title:           r.Title,
	}
}

// RecipeImageUploadedEvent is published when an image is attached to a recipe
type RecipeImageUploadedEvent struct {
	shared.BaseDomainEvent
	ImageKey string `json:"image_key"`
}

// NewRecipeImageUploadedEvent creates a new RecipeImageUploadedEvent
func NewRecipeImageUploadedEvent(r *Recipe, key string) *RecipeImageUploadedEvent {
	return &RecipeImageUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeImageUploaded, AggregateTypeRecipe, r.ID, r.OwnerID),
		ImageKey:        key,
	}
}

// TagCreatedEvent is published when a tag is created
type TagCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewTagCreatedEvent creates a new TagCreatedEvent
func NewTagCreatedEvent(t *Tag) *TagCreatedEvent {
	return &TagCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTagCreated, AggregateTypeTag, t.ID, t.OwnerID),
		Name:            t.Name,
	}
}

// IngredientCreatedEvent is published when an ingredient is created
type IngredientCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewIngredientCreatedEvent creates a new IngredientCreatedEvent
func NewIngredientCreatedEvent(i *Ingredient) *IngredientCreatedEvent {
	return &IngredientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIngredientCreated, AggregateTypeIngredient, i.ID, i.OwnerID),
		Name:            i.Name,
	}
}
