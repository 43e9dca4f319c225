package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// setupRecipeTestDB creates an in-memory SQLite database with the full schema
func setupRecipeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	return db
}

func TestGormTagRepository_CreateAndFind(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates and finds tag", func(t *testing.T) {
		tag, err := recipe.NewTag(ownerID, "Vegan")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, tag))

		found, err := repo.FindByIDForOwner(ctx, ownerID, tag.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vegan", found.Name)
		assert.Equal(t, ownerID, found.OwnerID)
	})

	t.Run("rejects duplicate name for same owner", func(t *testing.T) {
		dup, err := recipe.NewTag(ownerID, "Vegan")
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("allows same name for different owner", func(t *testing.T) {
		other, err := recipe.NewTag(uuid.New(), "Vegan")
		require.NoError(t, err)

		assert.NoError(t, repo.Create(ctx, other))
	})

	t.Run("lookup scoped to owner behaves as not found", func(t *testing.T) {
		tag, _ := recipe.NewTag(ownerID, "Private")
		require.NoError(t, repo.Create(ctx, tag))

		_, err := repo.FindByIDForOwner(ctx, uuid.New(), tag.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTagRepository_GetOrCreateByName(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates when missing", func(t *testing.T) {
		tag, err := repo.GetOrCreateByName(ctx, ownerID, "Dessert")

		require.NoError(t, err)
		assert.Equal(t, "Dessert", tag.Name)
	})

	t.Run("returns existing on exact name match", func(t *testing.T) {
		first, err := repo.GetOrCreateByName(ctx, ownerID, "Breakfast")
		require.NoError(t, err)

		second, err := repo.GetOrCreateByName(ctx, ownerID, "Breakfast")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&recipe.Tag{}).Where("owner_id = ? AND name = ?", ownerID, "Breakfast").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("name matching is case sensitive", func(t *testing.T) {
		lower, err := repo.GetOrCreateByName(ctx, ownerID, "brunch")
		require.NoError(t, err)

		upper, err := repo.GetOrCreateByName(ctx, ownerID, "Brunch")
		require.NoError(t, err)

		assert.NotEqual(t, lower.ID, upper.ID)
	})

	t.Run("scopes get-or-create per owner", func(t *testing.T) {
		mine, err := repo.GetOrCreateByName(ctx, ownerID, "Shared")
		require.NoError(t, err)

		theirs, err := repo.GetOrCreateByName(ctx, uuid.New(), "Shared")
		require.NoError(t, err)

		assert.NotEqual(t, mine.ID, theirs.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := repo.GetOrCreateByName(ctx, ownerID, "   ")

		assert.Error(t, err)
	})
}

func TestGormTagRepository_Update(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("renames tag", func(t *testing.T) {
		tag, _ := recipe.NewTag(ownerID, "Old name")
		require.NoError(t, repo.Create(ctx, tag))

		require.NoError(t, tag.Rename("New name"))
		require.NoError(t, repo.Update(ctx, tag))

		found, err := repo.FindByNameForOwner(ctx, ownerID, "New name")
		require.NoError(t, err)
		assert.Equal(t, tag.ID, found.ID)
	})

	t.Run("rename onto existing name is rejected", func(t *testing.T) {
		a, _ := recipe.NewTag(ownerID, "Taken")
		require.NoError(t, repo.Create(ctx, a))
		b, _ := recipe.NewTag(ownerID, "Free")
		require.NoError(t, repo.Create(ctx, b))

		require.NoError(t, b.Rename("Taken"))
		err := repo.Update(ctx, b)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormTagRepository_Delete(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("deletes own tag", func(t *testing.T) {
		tag, _ := recipe.NewTag(ownerID, "Doomed")
		require.NoError(t, repo.Create(ctx, tag))

		require.NoError(t, repo.DeleteForOwner(ctx, ownerID, tag.ID))

		_, err := repo.FindByIDForOwner(ctx, ownerID, tag.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cannot delete another user's tag", func(t *testing.T) {
		tag, _ := recipe.NewTag(ownerID, "Safe")
		require.NoError(t, repo.Create(ctx, tag))

		err := repo.DeleteForOwner(ctx, uuid.New(), tag.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByIDForOwner(ctx, ownerID, tag.ID)
		assert.NoError(t, err)
	})
}

func TestGormTagRepository_FindAllForOwner(t *testing.T) {
	db := setupRecipeTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	for _, name := range []string{"Apple", "Zucchini", "Mango"} {
		tag, _ := recipe.NewTag(ownerID, name)
		require.NoError(t, repo.Create(ctx, tag))
	}
	otherTag, _ := recipe.NewTag(uuid.New(), "Other")
	require.NoError(t, repo.Create(ctx, otherTag))

	t.Run("returns only own tags ordered by name descending", func(t *testing.T) {
		tags, total, err := repo.FindAllForOwner(ctx, ownerID, recipe.NewLabelFilter())

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, tags, 3)
		assert.Equal(t, "Zucchini", tags[0].Name)
		assert.Equal(t, "Mango", tags[1].Name)
		assert.Equal(t, "Apple", tags[2].Name)
	})

	t.Run("assigned only filters unassigned tags", func(t *testing.T) {
		tags, _, err := repo.FindAllForOwner(ctx, ownerID, recipe.NewLabelFilter())
		require.NoError(t, err)

		rec, err := recipe.NewRecipe(ownerID, "Tagged recipe", 5, decimal.NewFromInt(3))
		require.NoError(t, err)
		rec.SetTags([]recipe.Tag{tags[0]})
		recipeRepo := NewGormRecipeRepository(db)
		require.NoError(t, recipeRepo.Create(ctx, rec))

		filter := recipe.NewLabelFilter()
		filter.AssignedOnly = true
		assigned, total, err := repo.FindAllForOwner(ctx, ownerID, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, assigned, 1)
		assert.Equal(t, tags[0].ID, assigned[0].ID)
	})
}

func TestGormTagRepository_GetOrCreateByName_LostRace(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	repo := NewGormTagRepository(db.DB)
	ctx := context.Background()
	ownerID := uuid.New()
	winnerID := uuid.New()

	// The name is missing on first lookup, a concurrent request wins the
	// insert, and the unique index rejects ours. The winner's row must be
	// fetched and reused instead of failing the request.
	mock.ExpectQuery(`SELECT \* FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}))
	mock.ExpectExec(`INSERT INTO "tags"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectQuery(`SELECT \* FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).
			AddRow(winnerID.String(), ownerID.String(), "Smoky"))

	tag, err := repo.GetOrCreateByName(ctx, ownerID, "Smoky")
	require.NoError(t, err)
	assert.Equal(t, winnerID, tag.ID)
	assert.Equal(t, "Smoky", tag.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
