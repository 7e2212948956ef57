package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// TeamHandler serves the team CRUD endpoints.
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// Create creates a team
// POST /api/v1/teams
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	team, err := h.teamSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrTeamNameTaken) {
			response.Conflict(c, 20002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, team)
}

// Get fetches one team with its members
// GET /api/v1/teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.teamSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, team)
}

// List lists all teams
// GET /api/v1/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, teams)
}

// Update updates one team
// PUT /api/v1/teams/:id
func (h *TeamHandler) Update(c *gin.Context) {
	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	team, err := h.teamSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 20001, err.Error())
		case errors.Is(err, service.ErrTeamNameTaken):
			response.Conflict(c, 20002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, team)
}

// Delete removes one team and everything under it
// DELETE /api/v1/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.teamSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
