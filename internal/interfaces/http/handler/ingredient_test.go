package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	recipeapp "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newIngredientRouter(ownerID uuid.UUID) (*gin.Engine, *mockIngredientRepo) {
	repo := new(mockIngredientRepo)
	h := NewIngredientHandler(recipeapp.NewIngredientService(repo, zap.NewNop()))

	router := gin.New()
	authed := router.Group("", withClaims(newHandlerJWTService(), ownerID, "cook@example.com"))
	authed.GET("/api/v1/ingredients", h.List)
	authed.PATCH("/api/v1/ingredients/:id", h.Rename)
	authed.DELETE("/api/v1/ingredients/:id", h.Delete)
	return router, repo
}

func TestIngredientHandler_List(t *testing.T) {
	t.Run("lists the caller's ingredients", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ingredients := []recipe.Ingredient{
			*ownedIngredient(t, ownerID, "Salt"),
			*ownedIngredient(t, ownerID, "Garlic"),
		}
		repo.On("FindAllForOwner", mock.Anything, ownerID, mock.Anything).
			Return(ingredients, int64(2), nil)

		w := performJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Len(t, data["ingredients"], 2)
		assert.Equal(t, float64(2), data["total"])
	})

	t.Run("passes assigned_only and pagination through", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		repo.On("FindAllForOwner", mock.Anything, ownerID, mock.MatchedBy(func(f recipe.LabelFilter) bool {
			return f.AssignedOnly && f.Page == 2 && f.PageSize == 5
		})).Return([]recipe.Ingredient{}, int64(0), nil)

		w := performJSON(t, router, http.MethodGet,
			"/api/v1/ingredients?assigned_only=true&page=2&page_size=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})
}

func TestIngredientHandler_Rename(t *testing.T) {
	t.Run("renames an owned ingredient", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ing := ownedIngredient(t, ownerID, "Suger")
		repo.On("FindByIDForOwner", mock.Anything, ownerID, ing.ID).Return(ing, nil)
		repo.On("Update", mock.Anything, ing).Return(nil)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/ingredients/"+ing.ID.String(),
			RenameLabelRequest{Name: "Sugar"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Sugar", data["name"])
	})

	t.Run("another user's ingredient is a 404", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ingID := uuid.New()
		repo.On("FindByIDForOwner", mock.Anything, ownerID, ingID).
			Return(nil, shared.ErrNotFound)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/ingredients/"+ingID.String(),
			RenameLabelRequest{Name: "Anything"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("conflicting name is a 409", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ing := ownedIngredient(t, ownerID, "Salt")
		repo.On("FindByIDForOwner", mock.Anything, ownerID, ing.ID).Return(ing, nil)
		repo.On("Update", mock.Anything, ing).Return(shared.ErrAlreadyExists)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/ingredients/"+ing.ID.String(),
			RenameLabelRequest{Name: "Pepper"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestIngredientHandler_Delete(t *testing.T) {
	t.Run("deletes and returns 204", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ingID := uuid.New()
		repo.On("DeleteForOwner", mock.Anything, ownerID, ingID).Return(nil)

		w := performJSON(t, router, http.MethodDelete, "/api/v1/ingredients/"+ingID.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found returns 404", func(t *testing.T) {
		ownerID := uuid.New()
		router, repo := newIngredientRouter(ownerID)

		ingID := uuid.New()
		repo.On("DeleteForOwner", mock.Anything, ownerID, ingID).
			Return(shared.ErrNotFound)

		w := performJSON(t, router, http.MethodDelete, "/api/v1/ingredients/"+ingID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
