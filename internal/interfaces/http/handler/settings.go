package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/crmdesk/backend/internal/application/company"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// logoFormField is the multipart field carrying the logo image
const logoFormField = "logo"

// SettingsHandler serves the company profile
type SettingsHandler struct {
	BaseHandler
	settingsService *company.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *company.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get godoc
// @Summary      Company settings
// @Description  Returns defaults when nothing has been saved yet
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[company.SettingsResponse]
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	resp, err := h.settingsService.Get(c.Request.Context(), userID)
	respond(&h.BaseHandler, c, resp, err)
}

// Upsert godoc
// @Summary      Save company settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body company.UpsertSettingsRequest true "Settings"
// @Success      200 {object} APIResponse[company.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SettingsHandler) Upsert(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req company.UpsertSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.settingsService.Upsert(c.Request.Context(), userID, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UploadLogo godoc
// @Summary      Upload company logo
// @Tags         settings
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo formData file true "PNG, JPEG, GIF, WEBP or SVG image"
// @Success      200 {object} APIResponse[company.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/logo [post]
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	header, err := c.FormFile(logoFormField)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.settingsService.UploadLogo(c.Request.Context(), userID, company.UploadLogoInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	respond(&h.BaseHandler, c, resp, err)
}

// handleUploadError answers a missing or oversized multipart file
func (h *SettingsHandler) handleUploadError(c *gin.Context, err error) {
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Missing file field: "+logoFormField)
		return
	}
	h.HandleError(c, err)
}

// Templates godoc
// @Summary      Invoice templates
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[[]company.TemplateInfo]
// @Security     BearerAuth
// @Router       /settings/templates [get]
func (h *SettingsHandler) Templates(c *gin.Context) {
	h.Success(c, h.settingsService.Templates())
}
