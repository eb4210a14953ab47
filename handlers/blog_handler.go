package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService services.BlogService
	helper      *helper.HTTPHelper
}

func NewBlogHandler(blogService services.BlogService, h *helper.HTTPHelper) *BlogHandler {
	return &BlogHandler{blogService: blogService, helper: h}
}

func (h *BlogHandler) GetBlogs(c *gin.Context) {
	var params models.BlogListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	blogs, pagination, err := h.blogService.GetBlogs(c.Request.Context(), params)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch blogs")
		return
	}
	h.helper.SendPaginated(c, blogs, pagination)
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to create blog")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, blog)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}

	blog, err := h.blogService.GetBlog(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch blog")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, blog)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var req models.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), id, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to update blog")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, blog)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}

	if err := h.blogService.DeleteBlog(c.Request.Context(), id); err != nil {
		h.helper.SendError(c, err, "Failed to delete blog")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Blog deleted successfully")
}

func (h *BlogHandler) GetStats(c *gin.Context) {
	stats, err := h.blogService.GetStats(c.Request.Context())
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch blog statistics")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, stats)
}
