package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recipebox/backend/internal/domain/shared"
)

// Tag is a user-owned label for grouping recipes. Tag names are unique
// per owner; two users may each own a tag with the same name.
type Tag struct {
	shared.OwnedAggregateRoot
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new tag for the given owner
func NewTag(ownerID uuid.UUID, name string) (*Tag, error) {
	if err := validateLabelName(name); err != nil {
		return nil, err
	}

	t := &Tag{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
	}

	t.AddDomainEvent(NewTagCreatedEvent(t))

	return t, nil
}

// Rename changes the tag's name
func (t *Tag) Rename(name string) error {
	if err := validateLabelName(name); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Ingredient is a user-owned label naming a component of recipes.
// Like tags, ingredient names are unique per owner.
type Ingredient struct {
	shared.OwnedAggregateRoot
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new ingredient for the given owner
func NewIngredient(ownerID uuid.UUID, name string) (*Ingredient, error) {
	if err := validateLabelName(name); err != nil {
		return nil, err
	}

	i := &Ingredient{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
	}

	i.AddDomainEvent(NewIngredientCreatedEvent(i))

	return i, nil
}

// Rename changes the ingredient's name
func (i *Ingredient) Rename(name string) error {
	if err := validateLabelName(name); err != nil {
		return err
	}

	i.Name = strings.TrimSpace(name)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

func validateLabelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 255 characters")
	}
	return nil
}
