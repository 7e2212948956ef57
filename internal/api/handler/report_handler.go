package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

// ReportHandler serves the fairness report endpoint.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Fairness returns the team-wide fairness standing
// GET /api/v1/teams/:id/reports/fairness
func (h *ReportHandler) Fairness(c *gin.Context) {
	resp, err := h.reportSvc.Fairness(c.Request.Context(), c.Param("id"))
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
