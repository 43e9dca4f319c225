package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// IngredientDTO represents an ingredient in API responses
type IngredientDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeDTO represents a recipe in API responses
type RecipeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Link        string          `json:"link"`
	HasImage    bool            `json:"has_image"`
	Tags        []TagDTO        `json:"tags"`
	Ingredients []IngredientDTO `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateRecipeInput contains input for creating a recipe.
// Tags and Ingredients carry label names; missing labels are created
// for the owner on the fly.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Description string
	Link        string
	Tags        []string
	Ingredients []string
}

// UpdateRecipeInput contains input for partial recipe updates.
// Nil pointers leave the corresponding field untouched; an empty
// Tags or Ingredients slice clears the association.
type UpdateRecipeInput struct {
	ID          uuid.UUID
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeListResult represents a paginated recipe list
type RecipeListResult struct {
	Recipes    []RecipeDTO `json:"recipes"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// TagListResult represents a paginated tag list
type TagListResult struct {
	Tags       []TagDTO `json:"tags"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// IngredientListResult represents a paginated ingredient list
type IngredientListResult struct {
	Ingredients []IngredientDTO `json:"ingredients"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
}

// ImageURLResult contains a presigned download URL for a recipe image
type ImageURLResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
