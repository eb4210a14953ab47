package handlers

import (
	"net/http"

	"portfolio-api/helper"
	"portfolio-api/models"
	"portfolio-api/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
	helper        *helper.HTTPHelper
}

func NewReportHandler(reportService services.ReportService, h *helper.HTTPHelper) *ReportHandler {
	return &ReportHandler{reportService: reportService, helper: h}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	var params models.ReportListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	reports, pagination, err := h.reportService.GetReports(c.Request.Context(), params)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch reports")
		return
	}
	h.helper.SendPaginated(c, reports, pagination)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid report ID")
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.helper.SendError(c, err, "Failed to fetch report")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, report)
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), req)
	if err != nil {
		h.helper.SendError(c, err, "Failed to create report")
		return
	}
	h.helper.SendSuccess(c, http.StatusCreated, report)
}

func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.helper.ParseID(c, "id", "Invalid report ID")
	if !ok {
		return
	}
	var req models.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBindError(c, err)
		return
	}

	report, err := h.reportService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.helper.SendError(c, err, "Failed to update report status")
		return
	}
	h.helper.SendSuccess(c, http.StatusOK, report)
}
