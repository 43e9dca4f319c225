package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	recipeapp "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/domain/recipe"
)

// IngredientHandler handles ingredient HTTP requests
type IngredientHandler struct {
	BaseHandler
	ingredientService *recipeapp.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *recipeapp.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// List godoc
// @ID           listIngredients
// @Summary      List ingredients
// @Description  Get the caller's ingredients, name descending, optionally limited to ingredients assigned to at least one recipe
// @Tags         ingredients
// @Produce      json
// @Param        assigned_only query bool false "Only ingredients assigned to a recipe"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[recipeapp.IngredientListResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query LabelListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := recipe.NewLabelFilter()
	filter.AssignedOnly = query.AssignedOnly
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	result, err := h.ingredientService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Rename godoc
// @ID           renameIngredient
// @Summary      Rename an ingredient
// @Description  Rename one of the caller's ingredients
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Param        id path string true "Ingredient ID" format(uuid)
// @Param        request body RenameLabelRequest true "New ingredient name"
// @Success      200 {object} APIResponse[recipeapp.IngredientDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ingredients/{id} [patch]
func (h *IngredientHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req RenameLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.ingredientService.Rename(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteIngredient
// @Summary      Delete an ingredient
// @Description  Delete one of the caller's ingredients, detaching it from any recipes
// @Tags         ingredients
// @Produce      json
// @Param        id path string true "Ingredient ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	if err := h.ingredientService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
