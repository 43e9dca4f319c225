package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	recipeapp "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/domain/recipe"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	BaseHandler
	tagService *recipeapp.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *recipeapp.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// List godoc
// @ID           listTags
// @Summary      List tags
// @Description  Get the caller's tags, name descending, optionally limited to tags assigned to at least one recipe
// @Tags         tags
// @Produce      json
// @Param        assigned_only query bool false "Only tags assigned to a recipe"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[recipeapp.TagListResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
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

	result, err := h.tagService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Rename godoc
// @ID           renameTag
// @Summary      Rename a tag
// @Description  Rename one of the caller's tags
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Param        request body RenameLabelRequest true "New tag name"
// @Success      200 {object} APIResponse[recipeapp.TagDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags/{id} [patch]
func (h *TagHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	var req RenameLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tagService.Rename(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @ID           deleteTag
// @Summary      Delete a tag
// @Description  Delete one of the caller's tags, detaching it from any recipes
// @Tags         tags
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
