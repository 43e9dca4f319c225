package handler

// =====================
// Recipe Request DTOs
// =====================

// LabelRef identifies a tag or ingredient in a recipe payload by name
type LabelRef struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// TimeMinutes and Price bind as pointers so zero values pass validation;
// a free or zero-minute recipe is valid.
type CreateRecipeRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	TimeMinutes *int       `json:"time_minutes" binding:"required,gte=0"`
	Price       *float64   `json:"price" binding:"required,gte=0"`
	Description string     `json:"description"`
	Link        string     `json:"link" binding:"omitempty,max=255"`
	Tags        []LabelRef `json:"tags" binding:"omitempty,dive"`
	Ingredients []LabelRef `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest represents the request body for partial recipe
// updates. Omitted fields are left unchanged; an empty tags or
// ingredients array clears the association.
type UpdateRecipeRequest struct {
	Title       *string     `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *int        `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64    `json:"price" binding:"omitempty,gte=0"`
	Description *string     `json:"description"`
	Link        *string     `json:"link" binding:"omitempty,max=255"`
	Tags        *[]LabelRef `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]LabelRef `json:"ingredients" binding:"omitempty,dive"`
}

// RecipeListQuery represents query parameters for listing recipes.
// Tags and Ingredients take comma separated UUIDs.
type RecipeListQuery struct {
	Tags        string `form:"tags"`
	Ingredients string `form:"ingredients"`
	OrderBy     string `form:"order_by" binding:"omitempty,oneof=created_at updated_at title time_minutes price"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LabelListQuery represents query parameters for listing tags and ingredients
type LabelListQuery struct {
	AssignedOnly bool `form:"assigned_only"`
	Page         int  `form:"page" binding:"omitempty,min=1"`
	PageSize     int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RenameLabelRequest represents the request body for renaming a tag or ingredient
type RenameLabelRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
