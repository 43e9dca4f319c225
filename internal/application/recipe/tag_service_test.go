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

func TestTagService_List(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()

	tags := []recipe.Tag{
		*newOwnedTag(t, ownerID, "Vegan"),
		*newOwnedTag(t, ownerID, "Dessert"),
	}
	filter := recipe.NewLabelFilter()

	tagRepo.On("FindAllForOwner", mock.Anything, ownerID, filter).
		Return(tags, int64(2), nil)

	result, err := svc.List(context.Background(), ownerID, filter)
	require.NoError(t, err)

	require.Len(t, result.Tags, 2)
	assert.Equal(t, "Vegan", result.Tags[0].Name)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}

func TestTagService_List_AssignedOnly(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()

	filter := recipe.NewLabelFilter()
	filter.AssignedOnly = true

	tagRepo.On("FindAllForOwner", mock.Anything, ownerID, filter).
		Return([]recipe.Tag{}, int64(0), nil)

	result, err := svc.List(context.Background(), ownerID, filter)
	require.NoError(t, err)

	assert.Empty(t, result.Tags)
	tagRepo.AssertExpectations(t)
}

func TestTagService_Rename_Success(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	tag := newOwnedTag(t, ownerID, "Brekfast")

	tagRepo.On("FindByIDForOwner", mock.Anything, ownerID, tag.ID).Return(tag, nil)
	tagRepo.On("Update", mock.Anything, tag).Return(nil)

	dto, err := svc.Rename(context.Background(), ownerID, tag.ID, "Breakfast")
	require.NoError(t, err)

	assert.Equal(t, "Breakfast", dto.Name)
	tagRepo.AssertExpectations(t)
}

func TestTagService_Rename_NotFound(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	tagRepo.On("FindByIDForOwner", mock.Anything, ownerID, id).
		Return(nil, shared.ErrNotFound)

	_, err := svc.Rename(context.Background(), ownerID, id, "Breakfast")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TAG_NOT_FOUND", domainErr.Code)
}

func TestTagService_Rename_DuplicateName(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	tag := newOwnedTag(t, ownerID, "Lunch")

	tagRepo.On("FindByIDForOwner", mock.Anything, ownerID, tag.ID).Return(tag, nil)
	tagRepo.On("Update", mock.Anything, tag).Return(shared.ErrAlreadyExists)

	_, err := svc.Rename(context.Background(), ownerID, tag.ID, "Dinner")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NAME_EXISTS", domainErr.Code)
}

func TestTagService_Rename_EmptyName(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	tag := newOwnedTag(t, ownerID, "Lunch")

	tagRepo.On("FindByIDForOwner", mock.Anything, ownerID, tag.ID).Return(tag, nil)

	_, err := svc.Rename(context.Background(), ownerID, tag.ID, "   ")
	require.Error(t, err)

	tagRepo.AssertNotCalled(t, "Update")
}

func TestTagService_Delete_Success(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	tagRepo.On("DeleteForOwner", mock.Anything, ownerID, id).Return(nil)

	err := svc.Delete(context.Background(), ownerID, id)
	require.NoError(t, err)

	tagRepo.AssertExpectations(t)
}

func TestTagService_Delete_NotFound(t *testing.T) {
	tagRepo := new(MockTagRepository)
	svc := NewTagService(tagRepo, zap.NewNop())
	ownerID := uuid.New()
	id := uuid.New()

	tagRepo.On("DeleteForOwner", mock.Anything, ownerID, id).
		Return(shared.ErrNotFound)

	err := svc.Delete(context.Background(), ownerID, id)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TAG_NOT_FOUND", domainErr.Code)
}
