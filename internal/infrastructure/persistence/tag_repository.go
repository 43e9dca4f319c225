package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// Create persists a new tag
func (r *GormTagRepository) Create(ctx context.Context, t *recipe.Tag) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to a tag
func (r *GormTagRepository) Update(ctx context.Context, t *recipe.Tag) error {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(t.OwnerID)).
		Save(t)
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

// DeleteForOwner deletes a tag owned by the given user
func (r *GormTagRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(OwnedBy(ownerID)).Where("id = ?", id).Delete(&recipe.Tag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error
	})
}

// FindByIDForOwner finds a tag by ID
func (r *GormTagRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*recipe.Tag, error) {
	var t recipe.Tag
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("id = ?", id).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByNameForOwner finds a tag by exact name
func (r *GormTagRepository) FindByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (*recipe.Tag, error) {
	var t recipe.Tag
	if err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID)).
		Where("name = ?", name).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetOrCreateByName returns the owner's tag with the given name, creating
// it when missing. A concurrent insert of the same name trips the unique
// index; the loser of that race re-fetches the winner's row.
func (r *GormTagRepository) GetOrCreateByName(ctx context.Context, ownerID uuid.UUID, name string) (*recipe.Tag, error) {
	existing, err := r.FindByNameForOwner(ctx, ownerID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	t, err := recipe.NewTag(ownerID, name)
	if err != nil {
		return nil, err
	}
	if err := r.Create(ctx, t); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return r.FindByNameForOwner(ctx, ownerID, name)
		}
		return nil, err
	}
	return t, nil
}

// FindAllForOwner returns the owner's tags ordered by name descending
func (r *GormTagRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter recipe.LabelFilter) ([]recipe.Tag, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&recipe.Tag{}).
		Scopes(OwnedBy(ownerID))

	if filter.AssignedOnly {
		query = query.Where("id IN (SELECT tag_id FROM recipe_tags)")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []recipe.Tag
	if err := query.
		Order("name DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}
