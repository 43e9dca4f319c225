package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recipebox/backend/internal/domain/shared"
)

// Recipe represents a recipe owned by a single user.
// It is the aggregate root for recipe operations and carries its
// tag and ingredient associations.
type Recipe struct {
	shared.OwnedAggregateRoot
	Title       string          `gorm:"type:varchar(255);not null"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Description string          `gorm:"type:text"`
	Link        string          `gorm:"type:varchar(255)"`
	ImageKey    string          `gorm:"type:varchar(500)"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// NewRecipe creates a new recipe for the given owner
func NewRecipe(ownerID uuid.UUID, title string, timeMinutes int, price decimal.Decimal) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if timeMinutes < 0 {
		return nil, shared.NewDomainError("INVALID_TIME", "Time in minutes cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	r := &Recipe{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              strings.TrimSpace(title),
		TimeMinutes:        timeMinutes,
		Price:              price,
	}

	r.AddDomainEvent(NewRecipeCreatedEvent(r))

	return r, nil
}

// SetDescription sets the recipe's long-form description
func (r *Recipe) SetDescription(description string) {
	r.Description = description
	r.touch()
}

// SetLink sets an external reference link for the recipe
func (r *Recipe) SetLink(link string) error {
	if len(link) > 255 {
		return shared.NewDomainError("INVALID_LINK", "Link cannot exceed 255 characters")
	}

	r.Link = strings.TrimSpace(link)
	r.touch()

	return nil
}

// Update updates the recipe's core fields
func (r *Recipe) Update(title string, timeMinutes int, price decimal.Decimal) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if timeMinutes < 0 {
		return shared.NewDomainError("INVALID_TIME", "Time in minutes cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	r.Title = strings.TrimSpace(title)
	r.TimeMinutes = timeMinutes
	r.Price = price
	r.touch()

	r.AddDomainEvent(NewRecipeUpdatedEvent(r))

	return nil
}

// SetTags replaces the recipe's tag associations
func (r *Recipe) SetTags(tags []Tag) {
	r.Tags = tags
	r.touch()
}

// SetIngredients replaces the recipe's ingredient associations
func (r *Recipe) SetIngredients(ingredients []Ingredient) {
	r.Ingredients = ingredients
	r.touch()
}

// SetImageKey records the storage key of the recipe's image
func (r *Recipe) SetImageKey(key string) {
	r.ImageKey = key
	r.touch()

	r.AddDomainEvent(NewRecipeImageUploadedEvent(r, key))
}

// HasImage reports whether an image has been uploaded for the recipe
func (r *Recipe) HasImage() bool {
	return r.ImageKey != ""
}

// TagIDs returns the IDs of the recipe's tags
func (r *Recipe) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the IDs of the recipe's ingredients
func (r *Recipe) IngredientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

func (r *Recipe) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	return nil
}
