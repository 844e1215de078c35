package handler

import (
	"net/http"
	"time"

	"github.com/crmdesk/backend/internal/application/bookkeeping"
	"github.com/crmdesk/backend/internal/infrastructure/format"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DailyLogHandler serves the daily business log
type DailyLogHandler struct {
	BaseHandler
	logService *bookkeeping.DailyLogService
	loc        *time.Location
}

// NewDailyLogHandler creates a new daily log handler
func NewDailyLogHandler(logService *bookkeeping.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{logService: logService, loc: time.Local}
}

// SetLocation sets the zone query dates are read in
func (h *DailyLogHandler) SetLocation(loc *time.Location) {
	if loc != nil {
		h.loc = loc
	}
}

type previousDayQuery struct {
	Date string `form:"date"`
}

// Create godoc
// @Summary      Create daily log
// @Tags         daily-logs
// @Accept       json
// @Produce      json
// @Param        request body bookkeeping.DailyLogRequest true "Daily log"
// @Success      201 {object} APIResponse[bookkeeping.DailyLogResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /daily-logs [post]
func (h *DailyLogHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req bookkeeping.DailyLogRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.logService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get daily log
// @Tags         daily-logs
// @Produce      json
// @Param        id path string true "Daily log ID"
// @Success      200 {object} APIResponse[bookkeeping.DailyLogResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /daily-logs/{id} [get]
func (h *DailyLogHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.logService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update daily log
// @Tags         daily-logs
// @Accept       json
// @Produce      json
// @Param        id path string true "Daily log ID"
// @Param        request body bookkeeping.DailyLogRequest true "Daily log"
// @Success      200 {object} APIResponse[bookkeeping.DailyLogResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /daily-logs/{id} [put]
func (h *DailyLogHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req bookkeeping.DailyLogRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.logService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete daily log
// @Tags         daily-logs
// @Param        id path string true "Daily log ID"
// @Success      204
// @Security     BearerAuth
// @Router       /daily-logs/{id} [delete]
func (h *DailyLogHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.logService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List daily logs
// @Tags         daily-logs
// @Produce      json
// @Param        date_from query string false "From (YYYY-MM-DD)"
// @Param        date_to query string false "To (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]bookkeeping.DailyLogResponse]
// @Security     BearerAuth
// @Router       /daily-logs [get]
func (h *DailyLogHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter bookkeeping.DailyLogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.logService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// Previous godoc
// @Summary      Previous day's log
// @Description  Used to carry the closing stock forward as the next opening stock
// @Tags         daily-logs
// @Produce      json
// @Param        date query string true "Reference date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[bookkeeping.DailyLogResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /daily-logs/previous [get]
func (h *DailyLogHandler) Previous(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var q previousDayQuery
	if !h.bindQuery(c, &q) {
		return
	}
	if q.Date == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "date is required")
		return
	}
	date, err := format.ParseInputDate(q.Date, h.loc)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "date must be YYYY-MM-DD")
		return
	}
	resp, err := h.logService.PreviousDay(c.Request.Context(), userID, date)
	respond(&h.BaseHandler, c, resp, err)
}
