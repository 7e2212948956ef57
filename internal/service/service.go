package service

import (
	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/internal/repository"
	"github.com/tamirmana/Shifter/pkg/lock"
)

// Service aggregates every business service.
type Service struct {
	Team           TeamService
	Member         MemberService
	Unavailability UnavailabilityService
	Schedule       ScheduleService
	Swap           SwapService
	Shotef         ShotefService
	Settings       SettingsService
	Report         ReportService
	Export         ExportService
}

// NewService creates the Service aggregate.
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	locks := lock.NewKeyed()
	return &Service{
		Team:           NewTeamService(repo, logger),
		Member:         NewMemberService(repo, logger),
		Unavailability: NewUnavailabilityService(repo, logger),
		Schedule:       NewScheduleService(repo, locks, logger),
		Swap:           NewSwapService(repo, logger),
		Shotef:         NewShotefService(repo, logger),
		Settings:       NewSettingsService(repo, logger),
		Report:         NewReportService(repo, logger),
		Export:         NewExportService(repo, logger),
	}
}
