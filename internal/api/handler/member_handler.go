package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// MemberHandler serves the member CRUD endpoints.
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Create adds a member to a team
// POST /api/v1/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	member, err := h.memberSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 20001, err.Error())
		case errors.Is(err, service.ErrMemberNameTaken):
			response.Conflict(c, 21002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, member)
}

// Get fetches one member
// GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 21001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, member)
}

// ListByTeam lists one team's members
// GET /api/v1/teams/:id/members
func (h *MemberHandler) ListByTeam(c *gin.Context) {
	members, err := h.memberSvc.ListByTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, members)
}

// Update updates one member
// PUT /api/v1/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	member, err := h.memberSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.NotFound(c, 21001, err.Error())
		case errors.Is(err, service.ErrMemberNameTaken):
			response.Conflict(c, 21002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, member)
}

// Delete removes one member
// DELETE /api/v1/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFound(c, 21001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
