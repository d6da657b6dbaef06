package handler

import (
	recipeapp "github.com/cookbook/backend/internal/application/recipe"
	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RecipeHandler handles recipe API endpoints
type RecipeHandler struct {
	BaseHandler
	service *recipeapp.Service
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(service *recipeapp.Service) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// RegisterRoutes registers recipe routes on the given group
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/categories", h.Categories)
		recipes.GET("/:id", h.Get)
		recipes.POST("", h.Create)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}
}

// List returns recipes, optionally narrowed by q, category or difficulty
// query parameters. Filters are mutually exclusive; q wins, then category,
// then difficulty.
func (h *RecipeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		recipes []*recipeapp.RecipeResponse
		err     error
	)
	switch {
	case c.Query("q") != "":
		recipes, err = h.service.Search(ctx, c.Query("q"))
	case c.Query("category") != "":
		recipes, err = h.service.FilterByCategory(ctx, c.Query("category"))
	case c.Query("difficulty") != "":
		recipes, err = h.service.FilterByDifficulty(ctx, c.Query("difficulty"))
	default:
		recipes, err = h.service.List(ctx)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if recipes == nil {
		recipes = []*recipeapp.RecipeResponse{}
	}
	h.Success(c, recipes)
}

// Get returns a single recipe by id
func (h *RecipeHandler) Get(c *gin.Context) {
	res, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// Categories returns the distinct categories across all recipes
func (h *RecipeHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	h.Success(c, categories)
}

// Create creates a new recipe
func (h *RecipeHandler) Create(c *gin.Context) {
	var input recipeapp.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, res)
}

// Update applies a partial update to an existing recipe
func (h *RecipeHandler) Update(c *gin.Context) {
	var input recipeapp.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// Delete removes a recipe by id
func (h *RecipeHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if !deleted {
		h.HandleDomainError(c, recipe.ErrNotFound)
		return
	}
	h.NoContent(c)
}
