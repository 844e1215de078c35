package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/logger"
	"github.com/crmdesk/backend/internal/infrastructure/scheduler"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping() error
}

// JobRunner exposes the background job scheduler
type JobRunner interface {
	Runs() []scheduler.JobRun
	RunNow(ctx context.Context, name string) error
}

// SystemHandler serves liveness, readiness and background job status
type SystemHandler struct {
	BaseHandler
	db      Pinger
	jobs    JobRunner
	version string
}

// NewSystemHandler creates a new system handler. jobs may be nil when the scheduler is disabled.
func NewSystemHandler(db Pinger, jobs JobRunner, version string) *SystemHandler {
	return &SystemHandler{db: db, jobs: jobs, version: version}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Fails while the database is unreachable
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} ErrorResponse
// @Router       /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Readiness check failed", zap.Error(err))
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeNotReady, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "ok",
		"time":     time.Now().Format(time.RFC3339),
	})
}

// Jobs godoc
// @Summary      Background jobs
// @Description  Latest run and next schedule of every registered job
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[[]scheduler.JobRun]
// @Security     BearerAuth
// @Router       /jobs [get]
func (h *SystemHandler) Jobs(c *gin.Context) {
	if h.jobs == nil {
		h.Success(c, []scheduler.JobRun{})
		return
	}
	h.Success(c, h.jobs.Runs())
}

// RunJob godoc
// @Summary      Run a background job now
// @Tags         system
// @Param        name path string true "Job name"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /jobs/{name}/run [post]
func (h *SystemHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if h.jobs == nil {
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Job not found: "+name)
		return
	}
	err := h.jobs.RunNow(c.Request.Context(), name)
	switch {
	case err == nil:
		h.NoContent(c)
	case errors.Is(err, scheduler.ErrJobNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Job not found: "+name)
	case errors.Is(err, scheduler.ErrJobAlreadyRunning):
		h.Error(c, http.StatusConflict, dto.ErrCodeConflict, "Job already running: "+name)
	default:
		logger.GetGinLogger(c).Error("Job failed", zap.String("job", name), zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Job failed")
	}
}
