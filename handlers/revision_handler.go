package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type RevisionHandler struct {
	revisionService services.RevisionService
	helper          *helper.HTTPHelper
}

func NewRevisionHandler(revisionService services.RevisionService, h *helper.HTTPHelper) *RevisionHandler {
	return &RevisionHandler{revisionService: revisionService, helper: h}
}

func (h *RevisionHandler) GetRevisions(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var page models.PageParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	revisions, pagination, err := h.revisionService.GetRevisions(c.Request.Context(), blogID, page)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch revisions")
		return
	}
	h.helper.SendPaginated(c, revisions, pagination)
}

func (h *RevisionHandler) GetRevision(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	version, ok := h.helper.ParseID(c, "version", "Invalid version number")
	if !ok {
		return
	}

	revision, err := h.revisionService.GetRevision(c.Request.Context(), blogID, version)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch revision")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, revision)
}

func (h *RevisionHandler) CreateRevision(c *gin.Context) {
	blogID, ok := h.helper.ParseID(c, "id", "Invalid blog ID")
	if !ok {
		return
	}
	var req models.CreateRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	revision, err := h.revisionService.CreateRevision(c.Request.Context(), blogID, req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to create revision")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, revision)
}
