package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// SettingsHandler serves the configuration endpoints.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get returns the resolved values for a scope
// GET /api/v1/settings?team_id=
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.settingsSvc.Get(c.Request.Context(), c.Query("team_id"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Update overrides keys in a scope
// PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	resp, err := h.settingsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSettingKey):
			response.BadRequest(c, 26001, err.Error())
		case errors.Is(err, service.ErrInvalidSettingValue):
			response.BadRequest(c, 26002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, resp)
}
