package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// ShotefHandler serves the day-duty endpoints.
type ShotefHandler struct {
	shotefSvc service.ShotefService
}

// NewShotefHandler creates a ShotefHandler.
func NewShotefHandler(shotefSvc service.ShotefService) *ShotefHandler {
	return &ShotefHandler{shotefSvc: shotefSvc}
}

// Reassign moves one day duty to another member
// PUT /api/v1/shotef/:id
func (h *ShotefHandler) Reassign(c *gin.Context) {
	var req dto.ReassignShotefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	view, err := h.shotefSvc.Reassign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShotefDayNotFound):
			response.NotFound(c, 25001, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 21003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, view)
}

// AddDays places one member on several day duties
// POST /api/v1/shotef
func (h *ShotefHandler) AddDays(c *gin.Context) {
	var req dto.AddShotefDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	views, err := h.shotefSvc.AddDays(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 21003, err.Error())
		case errors.Is(err, service.ErrShotefWeekendDate):
			response.BadRequest(c, 25002, err.Error())
		case errors.Is(err, service.ErrShotefDayTaken):
			response.Conflict(c, 25003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, views)
}

// DeleteDay removes one day duty
// DELETE /api/v1/shotef/:id
func (h *ShotefHandler) DeleteDay(c *gin.Context) {
	if err := h.shotefSvc.DeleteDay(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrShotefDayNotFound) {
			response.NotFound(c, 25001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// History returns the per-member standing this period
// GET /api/v1/teams/:id/shotef/history
func (h *ShotefHandler) History(c *gin.Context) {
	resp, err := h.shotefSvc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Settle closes the current accounting period
// POST /api/v1/shotef/settle
func (h *ShotefHandler) Settle(c *gin.Context) {
	var req dto.SettleShotefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	resp, err := h.shotefSvc.Settle(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
