package recipe

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIngredientService_List(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()

	ingredients := []recipe.Ingredient{
		*newOwnedIngredient(t, ownerID, "Salt"),
		*newOwnedIngredient(t, ownerID, "Pepper"),
	}
	filter := recipe.NewLabelFilter()
	filter.PageSize = 1

	ingredientRepo.On("FindAllForOwner", mock.Anything, ownerID, filter).
		Return(ingredients[:1], int64(2), nil)

	result, err := svc.List(context.Background(), ownerID, filter)
	require.NoError(t, err)

	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "Salt", result.Ingredients[0].Name)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 2, result.TotalPages)
}

func TestIngredientService_Rename_Success(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()
	ing := newOwnedIngredient(t, ownerID, "Corriander")

	ingredientRepo.On("FindByIDForOwner", mock.Anything, ownerID, ing.ID).Return(ing, nil)
	ingredientRepo.On("Update", mock.Anything, ing).Return(nil)

	dto, err := svc.Rename(context.Background(), ownerID, ing.ID, "Coriander")
	require.NoError(t, err)

	assert.Equal(t, "Coriander", dto.Name)
	ingredientRepo.AssertExpectations(t)
}

func TestIngredientService_Rename_NotFound(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	ingredientRepo.On("FindByIDForOwner", mock.Anything, ownerID, id).
		Return(nil, shared.ErrNotFound)

	_, err := svc.Rename(context.Background(), ownerID, id, "Coriander")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INGREDIENT_NOT_FOUND", domainErr.Code)
}

func TestIngredientService_Rename_DuplicateName(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()
	ing := newOwnedIngredient(t, ownerID, "Sugar")

	ingredientRepo.On("FindByIDForOwner", mock.Anything, ownerID, ing.ID).Return(ing, nil)
	ingredientRepo.On("Update", mock.Anything, ing).Return(shared.ErrAlreadyExists)

	_, err := svc.Rename(context.Background(), ownerID, ing.ID, "Salt")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NAME_EXISTS", domainErr.Code)
}

func TestIngredientService_Delete_Success(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	ingredientRepo.On("DeleteForOwner", mock.Anything, ownerID, id).Return(nil)

	err := svc.Delete(context.Background(), ownerID, id)
	require.NoError(t, err)

	ingredientRepo.AssertExpectations(t)
}

func TestIngredientService_Delete_NotFound(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	svc := NewIngredientService(ingredientRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	ingredientRepo.On("DeleteForOwner", mock.Anything, ownerID, id).
		Return(shared.ErrNotFound)

	err := svc.Delete(context.Background(), ownerID, id)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INGREDIENT_NOT_FOUND", domainErr.Code)
}
