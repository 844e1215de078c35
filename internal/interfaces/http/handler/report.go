package handler

import (
	"fmt"
	"net/http"

	"github.com/crmdesk/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the CRM analytics report
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CRM godoc
// @Summary      CRM report
// @Tags         reports
// @Produce      json
// @Param        period query string false "day, week, month or year" default(month)
// @Success      200 {object} APIResponse[report.CRMReport]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/crm [get]
func (h *ReportHandler) CRM(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	resp, err := h.reportService.GetCRMReport(c.Request.Context(), userID, c.Query("period"))
	respond(&h.BaseHandler, c, resp, err)
}

// Export godoc
// @Summary      Download CRM report
// @Tags         reports
// @Produce      plain
// @Param        period query string false "day, week, month or year" default(month)
// @Success      200 {string} string "Report text"
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/crm/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	export, err := h.reportService.ExportText(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Content))
}
