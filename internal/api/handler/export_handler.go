package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the download endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel downloads one month as .xlsx
// GET /api/v1/export/schedule.xlsx?team_id=&year=&month=
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	buf, filename, err := h.exportSvc.ExportMonthExcel(c.Request.Context(), q.TeamID, q.Year, q.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, filename, xlsxContentType, buf.Bytes())
}

// ExportICS downloads one month as an .ics calendar
// GET /api/v1/export/schedule.ics?team_id=&year=&month=
func (h *ExportHandler) ExportICS(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	buf, filename, err := h.exportSvc.ExportMonthICS(c.Request.Context(), q.TeamID, q.Year, q.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, filename, "text/calendar", buf.Bytes())
}

func writeDownload(c *gin.Context, filename, contentType string, body []byte) {
	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Data(http.StatusOK, contentType, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrExportEmptyMonth):
		response.NotFound(c, 27001, err.Error())
	default:
		response.InternalError(c)
	}
}
