package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	recipeapp "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/interfaces/http/dto"
)

// defaultMaxImageSize caps uploads when no limit is configured
const defaultMaxImageSize = 5 << 20

// RecipeHandler handles recipe HTTP requests
type RecipeHandler struct {
	BaseHandler
	recipeService *recipeapp.RecipeService
	maxImageSize  int64
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService *recipeapp.RecipeService, maxImageSize int64) *RecipeHandler {
	if maxImageSize <= 0 {
		maxImageSize = defaultMaxImageSize
	}
	return &RecipeHandler{
		recipeService: recipeService,
		maxImageSize:  maxImageSize,
	}
}

// Create godoc
// @ID           createRecipe
// @Summary      Create a recipe
// @Description  Create a recipe with optional tags and ingredients. Unknown label names are created for the caller.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        request body CreateRecipeRequest true "Recipe creation request"
// @Success      201 {object} APIResponse[recipeapp.RecipeDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.recipeService.Create(c.Request.Context(), userID, recipeapp.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       priceFromFloat(*req.Price),
		Description: req.Description,
		Link:        req.Link,
		Tags:        labelNames(req.Tags),
		Ingredients: labelNames(req.Ingredients),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @ID           getRecipeById
// @Summary      Get a recipe
// @Description  Retrieve one of the caller's recipes with tags and ingredients
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Success      200 {object} APIResponse[recipeapp.RecipeDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	result, err := h.recipeService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listRecipes
// @Summary      List recipes
// @Description  Get the caller's recipes, newest first, optionally filtered by tag or ingredient IDs
// @Tags         recipes
// @Produce      json
// @Param        tags query string false "Comma separated tag IDs"
// @Param        ingredients query string false "Comma separated ingredient IDs"
// @Param        order_by query string false "Sort field" Enums(created_at, updated_at, title, time_minutes, price)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[recipeapp.RecipeListResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query RecipeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := recipe.NewRecipeFilter()
	if query.Tags != "" {
		tagIDs, err := parseIDList(query.Tags)
		if err != nil {
			h.BadRequest(c, "Invalid tag ID in tags filter")
			return
		}
		filter.TagIDs = tagIDs
	}
	if query.Ingredients != "" {
		ingredientIDs, err := parseIDList(query.Ingredients)
		if err != nil {
			h.BadRequest(c, "Invalid ingredient ID in ingredients filter")
			return
		}
		filter.IngredientIDs = ingredientIDs
	}
	if query.OrderBy != "" {
		filter.OrderBy = query.OrderBy
	}
	if query.OrderDir != "" {
		filter.OrderDir = query.OrderDir
	}
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}

	result, err := h.recipeService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @ID           updateRecipe
// @Summary      Update a recipe
// @Description  Partially update one of the caller's recipes. Omitted fields are left unchanged; an empty tags or ingredients array clears the association.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Param        request body UpdateRecipeRequest true "Recipe update request"
// @Success      200 {object} APIResponse[recipeapp.RecipeDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id} [patch]
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	input := recipeapp.UpdateRecipeInput{
		ID:          id,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Description: req.Description,
		Link:        req.Link,
		Tags:        labelNamesPtr(req.Tags),
		Ingredients: labelNamesPtr(req.Ingredients),
	}
	if req.Price != nil {
		input.Price = pricePtrFromFloat(*req.Price)
	}

	result, err := h.recipeService.Update(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Replace godoc
// @ID           replaceRecipe
// @Summary      Replace a recipe
// @Description  Fully replace one of the caller's recipes. All non-relational fields are required; omitted tags and ingredients are left untouched, an empty list clears them.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Param        request body CreateRecipeRequest true "Recipe replacement request"
// @Success      200 {object} APIResponse[recipeapp.RecipeDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) Replace(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.recipeService.Update(c.Request.Context(), userID, recipeapp.UpdateRecipeInput{
		ID:          id,
		Title:       &req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       pricePtrFromFloat(*req.Price),
		Description: &req.Description,
		Link:        &req.Link,
		Tags:        labelNamesOpt(req.Tags),
		Ingredients: labelNamesOpt(req.Ingredients),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteRecipe
// @Summary      Delete a recipe
// @Description  Delete one of the caller's recipes together with its image
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UploadImage godoc
// @ID           uploadRecipeImage
// @Summary      Upload a recipe image
// @Description  Attach an image to one of the caller's recipes, replacing any previous one
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Param        image formData file true "Image file (JPEG, PNG, GIF or WebP)"
// @Success      200 {object} APIResponse[recipeapp.RecipeDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}
	if fileHeader.Size > h.maxImageSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeInvalidImage, "Image exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	if int64(len(data)) > h.maxImageSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeInvalidImage, "Image exceeds the maximum allowed size")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.recipeService.UploadImage(c.Request.Context(), userID, id, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetImageURL godoc
// @ID           getRecipeImageUrl
// @Summary      Get a recipe image URL
// @Description  Get a short lived download URL for the recipe image
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID" format(uuid)
// @Success      200 {object} APIResponse[recipeapp.ImageURLResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /recipes/{id}/image [get]
func (h *RecipeHandler) GetImageURL(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	result, err := h.recipeService.GetImageURL(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// parseIDList parses a comma separated list of UUIDs
func parseIDList(s string) ([]uuid.UUID, error) {
	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
