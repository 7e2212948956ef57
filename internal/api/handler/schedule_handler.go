package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/cache"
	"github.com/tamirmana/Shifter/pkg/response"
)

// ScheduleHandler serves the night-rotation endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
	cache       *cache.Client
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService, cache *cache.Client) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, cache: cache}
}

// Generate regenerates one month
// POST /api/v1/schedule/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	resp, err := h.scheduleSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 20001, err.Error())
		case errors.Is(err, service.ErrPastMonth):
			response.BadRequest(c, 23001, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, resp)
}

// GetMonth returns the stored month
// GET /api/v1/schedule?team_id=&year=&month=
func (h *ScheduleHandler) GetMonth(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("schedule:%s:%d-%d", q.TeamID, q.Year, q.Month)
	var cached dto.MonthScheduleResponse
	if h.cache.GetJSON(ctx, key, &cached) {
		response.OK(c, &cached)
		return
	}

	resp, err := h.scheduleSvc.GetMonth(ctx, q.TeamID, q.Year, q.Month)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	h.cache.SetJSON(ctx, key, resp)
	response.OK(c, resp)
}

// ListMonths lists every month a team has assignments in
// GET /api/v1/teams/:id/schedules
func (h *ScheduleHandler) ListMonths(c *gin.Context) {
	resp, err := h.scheduleSvc.ListMonths(c.Request.Context(), c.Param("id"))
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

// DeleteMonth drops every assignment of one month
// DELETE /api/v1/schedule?team_id=&year=&month=
func (h *ScheduleHandler) DeleteMonth(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	if err := h.scheduleSvc.DeleteMonth(c.Request.Context(), q.TeamID, q.Year, q.Month); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// AssignManual places one member by hand
// POST /api/v1/teams/:id/shifts
func (h *ScheduleHandler) AssignManual(c *gin.Context) {
	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	views, err := h.scheduleSvc.AssignManual(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 21003, err.Error())
		case errors.Is(err, service.ErrShiftDateTaken):
			response.Conflict(c, 23002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, views)
}

// Reassign moves one shift to another member
// PUT /api/v1/shifts/:id
func (h *ScheduleHandler) Reassign(c *gin.Context) {
	var req dto.ReassignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	view, err := h.scheduleSvc.Reassign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftNotFound):
			response.NotFound(c, 23003, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrShiftHasActiveSwap):
			response.Conflict(c, 23004, err.Error())
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 21003, err.Error())
		case errors.Is(err, service.ErrDuplicateShift):
			response.Conflict(c, 23005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, view)
}

// DeleteShift removes one shift
// DELETE /api/v1/shifts/:id
func (h *ScheduleHandler) DeleteShift(c *gin.Context) {
	if err := h.scheduleSvc.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrShiftNotFound) {
			response.NotFound(c, 23003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// AddPastShifts backfills history nights
// POST /api/v1/shifts/past
func (h *ScheduleHandler) AddPastShifts(c *gin.Context) {
	var req dto.AddPastShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	views, err := h.scheduleSvc.AddPastShifts(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrNotPastDate):
			response.BadRequest(c, 23006, err.Error())
		case errors.Is(err, service.ErrDuplicateShift):
			response.Conflict(c, 23005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, views)
}
