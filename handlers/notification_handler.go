package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
	helper              *helper.HTTPHelper
}

func NewNotificationHandler(notificationService services.NotificationService, h *helper.HTTPHelper) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, helper: h}
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid notification ID")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err, "Failed to mark notification as read")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid notification ID")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), id); err != nil {
		h.helper.SendError(c, err, "Failed to delete notification")
		return
	}
	h.helper.SendMessage(c, http.StatusOK, "Notification deleted successfully")
}
