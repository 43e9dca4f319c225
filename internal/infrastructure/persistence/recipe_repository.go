package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// Create persists a new recipe together with its associations.
// Tags and ingredients on the aggregate must already be persisted;
// only join rows are written here.
func (r *GormRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(rec).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, rec)
	})
}

// Update persists changes to a recipe and replaces its associations
func (r *GormRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Tags", "Ingredients").
			Scopes(OwnedBy(rec.OwnerID)).
			Save(rec)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return replaceAssociations(tx, rec)
	})
}

func replaceAssociations(tx *gorm.DB, rec *recipe.Recipe) error {
	tags := make([]recipe.Tag, len(rec.Tags))
	copy(tags, rec.Tags)
	if err := tx.Model(rec).Association("Tags").Replace(toTagPtrs(tags)...); err != nil {
		return err
	}

	ingredients := make([]recipe.Ingredient, len(rec.Ingredients))
	copy(ingredients, rec.Ingredients)
	return tx.Model(rec).Association("Ingredients").Replace(toIngredientPtrs(ingredients)...)
}

func toTagPtrs(tags []recipe.Tag) []interface{} {
	ptrs := make([]interface{}, len(tags))
	for i := range tags {
		ptrs[i] = &tags[i]
	}
	return ptrs
}

func toIngredientPtrs(ingredients []recipe.Ingredient) []interface{} {
	ptrs := make([]interface{}, len(ingredients))
	for i := range ingredients {
		ptrs[i] = &ingredients[i]
	}
	return ptrs
}

// DeleteForOwner deletes a recipe owned by the given user
func (r *GormRecipeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(OwnedBy(ownerID)).Where("id = ?", id).Delete(&recipe.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", id).Error
	})
}

// FindByIDForOwner finds a recipe by ID with tags and ingredients loaded
func (r *GormRecipeRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAllForOwner returns the owner's recipes, newest first
func (r *GormRecipeRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter recipe.RecipeFilter) ([]recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&recipe.Recipe{}).
		Scopes(OwnedBy(ownerID))

	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", filter.IngredientIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, RecipeSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var recipes []recipe.Recipe
	if err := query.
		Preload("Tags").
		Preload("Ingredients").
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}
