package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService, h *helper.HTTPHelper) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, helper: h}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch categories")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, categories)
}

// GetCategory serves /categories/:id where the segment is either a numeric
// id or a slug.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch category")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to create category")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid category ID")
	if !ok {
		return
	}
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to update category")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid category ID")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.helper.SendError(c, err, "Failed to delete category")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Category deleted successfully")
}

func (h *CategoryHandler) GetBlogCategories(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}

	links, err := h.categoryService.GetBlogCategories(c.Request.Context(), blogID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch blog categories")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, links)
}

func (h *CategoryHandler) AssignCategory(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var req models.AssignCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	link, err := h.categoryService.AssignCategory(c.Request.Context(), blogID, req.CategoryID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to assign category")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, link)
}

func (h *CategoryHandler) UnassignCategory(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	categoryID, ok := h.helper.ParseID(c, "categoryId", "Invalid category ID")
	if !ok {
		return
	}

	if err := h.categoryService.UnassignCategory(c.Request.Context(), blogID, categoryID); err != nil {
		h.helper.SendError(c, err, "Failed to remove category")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Category removed from blog")
}
