package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// UnavailabilityHandler serves the vacation-date endpoints.
type UnavailabilityHandler struct {
	unavailSvc service.UnavailabilityService
}

// NewUnavailabilityHandler creates an UnavailabilityHandler.
func NewUnavailabilityHandler(unavailSvc service.UnavailabilityService) *UnavailabilityHandler {
	return &UnavailabilityHandler{unavailSvc: unavailSvc}
}

// Create marks one date
// POST /api/v1/unavailabilities
func (h *UnavailabilityHandler) Create(c *gin.Context) {
	var req dto.CreateUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	row, err := h.unavailSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 21001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, row)
}

// CreateBulk marks several dates at once
// POST /api/v1/unavailabilities/bulk
func (h *UnavailabilityHandler) CreateBulk(c *gin.Context) {
	var req dto.BulkUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	rows, err := h.unavailSvc.CreateBulk(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 21001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, rows)
}

// ListByMember lists one member's dates
// GET /api/v1/members/:id/unavailabilities
func (h *UnavailabilityHandler) ListByMember(c *gin.Context) {
	rows, err := h.unavailSvc.ListByMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 21001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, rows)
}

// Delete removes one date
// DELETE /api/v1/unavailabilities/:id
func (h *UnavailabilityHandler) Delete(c *gin.Context) {
	if err := h.unavailSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUnavailabilityNotFound) {
			response.NotFound(c, 22001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
