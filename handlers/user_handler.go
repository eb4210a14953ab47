package handlers

import (
	"net/http"
	"strings"

	"portfolio-api/helper"
	"portfolio-api/middleware"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, helper: h}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	users, pagination, err := h.userService.GetUsers(c.Request.Context(), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch users")
		return
	}
	h.helper.SendPaginated(c, users, pagination)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch user")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to update profile")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, profile)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.helper.SendError(c, err, "Failed to delete user")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) GetUserBlogs(c *gin.Context) {
	var params models.BlogListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	blogs, pagination, err := h.userService.GetUserBlogs(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch user blogs")
		return
	}
	h.helper.SendPaginated(c, blogs, pagination)
}

func (h *UserHandler) GetBookmarks(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	bookmarks, pagination, err := h.userService.GetBookmarks(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch bookmarks")
		return
	}
	h.helper.SendPaginated(c, bookmarks, pagination)
}

func (h *UserHandler) GetHistory(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	entries, pagination, err := h.userService.GetHistory(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch history")
		return
	}
	h.helper.SendPaginated(c, entries, pagination)
}

func (h *UserHandler) Follow(c *gin.Context) {
	followerID, ok := h.follower(c)
	if !ok {
		return
	}

	follow, err := h.userService.Follow(c.Request.Context(), c.Param("id"), followerID)
	if err != nil {
		h.helper.SendError(c, err, "Failed to follow user")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, follow)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	followerID, ok := h.follower(c)
	if !ok {
		return
	}

	if err := h.userService.Unfollow(c.Request.Context(), c.Param("id"), followerID); err != nil {
		h.helper.SendError(c, err, "Failed to unfollow user")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Unfollowed successfully")
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	following, pagination, err := h.userService.GetFollowing(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch following")
		return
	}
	h.helper.SendPaginated(c, following, pagination)
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	followers, pagination, err := h.userService.GetFollowers(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch followers")
		return
	}
	h.helper.SendPaginated(c, followers, pagination)
}

func (h *UserHandler) GetNotifications(c *gin.Context) {
	var params models.NotificationListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	notifications, pagination, err := h.userService.GetNotifications(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch notifications")
		return
	}
	h.helper.SendPaginated(c, notifications, pagination)
}

// follower resolves followerId from the query, the body or the caller.
func (h *UserHandler) follower(c *gin.Context) (string, bool) {
	if id := strings.TrimSpace(c.Query("followerId")); id != "" {
		return id, true
	}
	var req models.FollowRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.helper.SendBindError(c, err)
		return "", false
	}
	if id := strings.TrimSpace(req.FollowerID); id != "" {
		return id, true
	}
	if identity, ok := middleware.GetIdentity(c); ok {
		return identity.UserID, true
	}
	h.helper.SendBadRequest(c, "followerId is required")
	return "", false
}
