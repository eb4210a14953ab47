package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/middleware"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

// InteractionHandler serves comments, likes, bookmarks, views and reading
// history.
type InteractionHandler struct {
	interactionService services.InteractionService
	helper             *helper.HTTPHelper
}

func NewInteractionHandler(interactionService services.InteractionService, h *helper.HTTPHelper) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, helper: h}
}

func (h *InteractionHandler) GetComments(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	comments, pagination, err := h.interactionService.GetComments(c.Request.Context(), blogID, page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch comments")
		return
	}
	h.helper.SendPaginated(c, comments, pagination)
}

func (h *InteractionHandler) AddComment(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	comment, err := h.interactionService.AddComment(c.Request.Context(), blogID, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to create comment")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, comment)
}

func (h *InteractionHandler) UpdateComment(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid comment ID")
	if !ok {
		return
	}
	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	comment, err := h.interactionService.UpdateComment(c.Request.Context(), id, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to update comment")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, comment)
}

func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid comment ID")
	if !ok {
		return
	}

	if err := h.interactionService.DeleteComment(c.Request.Context(), id); err != nil {
		h.helper.SendError(c, err, "Failed to delete comment")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Comment deleted successfully")
}

func (h *InteractionHandler) GetLikes(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	likes, pagination, err := h.interactionService.GetLikes(c.Request.Context(), blogID, page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch likes")
		return
	}
	h.helper.SendPaginated(c, likes, pagination)
}

func (h *InteractionHandler) Like(c *gin.Context) {
	blogID, userID, ok := h.blogAndUser(c)
	if !ok {
		return
	}

	like, err := h.interactionService.Like(c.Request.Context(), blogID, userID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to like blog")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, like)
}

func (h *InteractionHandler) Unlike(c *gin.Context) {
	blogID, userID, ok := h.blogAndUser(c)
	if !ok {
		return
	}

	if err := h.interactionService.Unlike(c.Request.Context(), blogID, userID); err != nil {
		h.helper.SendError(c, err, "Failed to unlike blog")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Blog unliked successfully")
}

func (h *InteractionHandler) Bookmark(c *gin.Context) {
	blogID, userID, ok := h.blogAndUser(c)
	if !ok {
		return
	}

	bookmark, err := h.interactionService.Bookmark(c.Request.Context(), blogID, userID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to bookmark blog")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, bookmark)
}

func (h *InteractionHandler) Unbookmark(c *gin.Context) {
	blogID, userID, ok := h.blogAndUser(c)
	if !ok {
		return
	}

	if err := h.interactionService.Unbookmark(c.Request.Context(), blogID, userID); err != nil {
		h.helper.SendError(c, err, "Failed to remove bookmark")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Bookmark removed successfully")
}

func (h *InteractionHandler) GetViews(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	views, pagination, err := h.interactionService.GetViews(c.Request.Context(), blogID, page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch views")
		return
	}
	h.helper.SendPaginated(c, views, pagination)
}

// RecordView fills missing fields from the caller's identity and request.
func (h *InteractionHandler) RecordView(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var req models.CreateViewRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}
	if req.UserID == nil {
		if identity, ok := middleware.GetIdentity(c); ok {
			req.UserID = &identity.UserID
		}
	}
	if req.IPAddress == nil {
		ip := c.ClientIP()
		req.IPAddress = &ip
	}
	if req.UserAgent == nil {
		ua := c.Request.UserAgent()
		req.UserAgent = &ua
	}

	view, err := h.interactionService.RecordView(c.Request.Context(), blogID, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to record view")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, view)
}

func (h *InteractionHandler) AddBlogHistory(c *gin.Context) {
	blogID, userID, ok := h.blogAndUser(c)
	if !ok {
		return
	}

	entry, err := h.interactionService.AddHistory(c.Request.Context(), blogID, userID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to add to history")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, entry)
}

func (h *InteractionHandler) GetHistory(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	entries, pagination, err := h.interactionService.GetHistory(c.Request.Context(), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch history")
		return
	}
	h.helper.SendPaginated(c, entries, pagination)
}

func (h *InteractionHandler) AddHistory(c *gin.Context) {
	var req models.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	entry, err := h.interactionService.AddHistory(c.Request.Context(), req.BlogID, req.UserID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to add to history")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, entry)
}

func (h *InteractionHandler) DeleteHistory(c *gin.Context) {
	var req models.DeleteHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	if err := h.interactionService.DeleteHistory(c.Request.Context(), req.ID); err != nil {
		h.helper.SendError(c, err, "Failed to delete history")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "History deleted successfully")
}

// blogAndUser parses the blog id and the acting user, answering 400 when
// either is missing.
func (h *InteractionHandler) blogAndUser(c *gin.Context) (int, string, bool) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return 0, "", false
	}
	userID, err := actingUser(c)
	if err != nil {
		h.helper.SendBindError(c, err)
		return 0, "", false
	}
	if userID == "" {
		h.helper.SendBadRequest(c, "userId is required")
		return 0, "", false
	}
	return blogID, userID, true
}
