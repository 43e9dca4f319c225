package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormIngredientRepository implements IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// Create persists a new ingredient
func (r *GormIngredientRepository) Create(ctx context.Context, i *recipe.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(i).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an ingredient
func (r *GormIngredientRepository) Update(ctx context.Context, i *recipe.Ingredient) error {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(i.OwnerID)).
		Save(i)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForOwner deletes an ingredient owned by the given user
func (r *GormIngredientRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(OwnedBy(ownerID)).Where("id = ?", id).Delete(&recipe.Ingredient{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error
	})
}

// FindByIDForOwner finds an ingredient by ID
func (r *GormIngredientRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*recipe.Ingredient, error) {
	var i recipe.Ingredient
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FindByNameForOwner finds an ingredient by exact name
func (r *GormIngredientRepository) FindByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (*recipe.Ingredient, error) {
	var i recipe.Ingredient
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("name = ?", name).
		First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// GetOrCreateByName returns the owner's ingredient with the given name,
// creating it when missing. Concurrent creation of the same name is
// resolved by re-fetching after a unique violation.
func (r *GormIngredientRepository) GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*recipe.Ingredient, error) {
	existing, err := r.FindByNameForOwner(ctx, ownerID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	i, err := recipe.NewIngredient(ownerID, name)
	if err != nil {
		return nil, err
	}
	if err := r.Create(ctx, i); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return r.FindByNameForOwner(ctx, ownerID, name)
		}
		return nil, err
	}
	return i, nil
}

// FindAllForOwner returns the owner's ingredients ordered by name descending
func (r *GormIngredientRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter recipe.LabelFilter) ([]recipe.Ingredient, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&recipe.Ingredient{}).
		Scopes(OwnedBy(ownerID))

	if filter.AssignedOnly {
		query = query.Where("id IN (SELECT ingredient_id FROM recipe_ingredients)")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ingredients []recipe.Ingredient
	if err := query.
		Order("name DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}

	return ingredients, total, nil
}
