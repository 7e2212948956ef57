package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// SwapHandler serves the cover-ledger endpoints.
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler creates a SwapHandler.
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Create records a cover
// POST /api/v1/swaps
func (h *SwapHandler) Create(c *gin.Context) {
	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	view, err := h.swapSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftNotFound):
			response.NotFound(c, 23003, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrSwapAlreadyActive):
			response.Conflict(c, 24002, err.Error())
		case errors.Is(err, service.ErrSwapSelfCover):
			response.BadRequest(c, 24003, err.Error())
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 21003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, view)
}

// Revert undoes a cover
// DELETE /api/v1/swaps/:id
func (h *SwapHandler) Revert(c *gin.Context) {
	if err := h.swapSvc.Revert(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSwapNotFound) {
			response.NotFound(c, 24001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListByTeam lists a team's active swaps
// GET /api/v1/teams/:id/swaps
func (h *SwapHandler) ListByTeam(c *gin.Context) {
	views, err := h.swapSvc.ListByTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, views)
}

// Balances returns the per-member cover ledger
// GET /api/v1/teams/:id/swaps/balances
func (h *SwapHandler) Balances(c *gin.Context) {
	views, err := h.swapSvc.Balances(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, views)
}
