package handler

import (
	"github.com/tamirmana/Shifter/internal/service"
	"github.com/tamirmana/Shifter/pkg/cache"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Team           *TeamHandler
	Member         *MemberHandler
	Unavailability *UnavailabilityHandler
	Schedule       *ScheduleHandler
	Swap           *SwapHandler
	Shotef         *ShotefHandler
	Settings       *SettingsHandler
	Report         *ReportHandler
	Export         *ExportHandler
}

// NewHandler creates the Handler aggregate. cacheClient may be nil.
func NewHandler(svc *service.Service, cacheClient *cache.Client) *Handler {
	return &Handler{
		Team:           NewTeamHandler(svc.Team),
		Member:         NewMemberHandler(svc.Member),
		Unavailability: NewUnavailabilityHandler(svc.Unavailability),
		Schedule:       NewScheduleHandler(svc.Schedule, cacheClient),
		Swap:           NewSwapHandler(svc.Swap),
		Shotef:         NewShotefHandler(svc.Shotef),
		Settings:       NewSettingsHandler(svc.Settings),
		Report:         NewReportHandler(svc.Report),
		Export:         NewExportHandler(svc.Export),
	}
}
