package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── export errors ──

var (
	ErrExportEmptyMonth   = errors.New("no assignments stored for this month")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders a stored month as a downloadable file. Buffers are
// returned with a suggested filename; the handler sets the HTTP headers.
type ExportService interface {
	// One month as an .xlsx workbook.
	ExportMonthExcel(ctx context.Context, teamID string, year, month int) (*bytes.Buffer, string, error)
	// One month as an .ics calendar feed.
	ExportMonthICS(ctx context.Context, teamID string, year, month int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

type exportMonth struct {
	team   *model.Team
	shifts []model.Shift
	shotef []model.ShotefDay
}

func (s *exportService) loadMonth(ctx context.Context, teamID string, year, month int) (*exportMonth, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	shifts, err := s.repo.Shift.ListByTeamMonth(ctx, teamID, year, month)
	if err != nil {
		s.logger.Error("list month shifts failed", zap.Error(err))
		return nil, err
	}
	shotef, err := s.repo.ShotefDay.ListByTeamMonth(ctx, teamID, year, month)
	if err != nil {
		s.logger.Error("list month shotef failed", zap.Error(err))
		return nil, err
	}
	if len(shifts) == 0 && len(shotef) == 0 {
		return nil, ErrExportEmptyMonth
	}
	return &exportMonth{team: team, shifts: shifts, shotef: shotef}, nil
}

// ════════════════════════════════════════════════════════════
// ExportMonthExcel — one row per calendar day
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportMonthExcel(ctx context.Context, teamID string, year, month int) (*bytes.Buffer, string, error) {
	data, err := s.loadMonth(ctx, teamID, year, month)
	if err != nil {
		return nil, "", err
	}

	nightByDay := make(map[string]*model.Shift)
	for i := range data.shifts {
		nightByDay[data.shifts[i].ShiftDate.Format(model.DateFormat)] = &data.shifts[i]
	}
	shotefByDay := make(map[string]*model.ShotefDay)
	for i := range data.shotef {
		shotefByDay[data.shotef[i].Date.Format(model.DateFormat)] = &data.shotef[i]
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Schedule"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Day", "Night Shift", "Covered By", "Shotef"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	monthStart, monthEnd := monthBounds(year, month)
	row := 2
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format(model.DateFormat)
		night, covered, shotef := "", "", ""
		if sh := nightByDay[key]; sh != nil {
			night = memberDisplayName(sh.Member, sh.MemberID)
			if len(sh.Swaps) > 0 {
				covered = night
				night = memberDisplayName(sh.Swaps[0].OriginalMember, sh.Swaps[0].OriginalMemberID)
			}
		}
		if sd := shotefByDay[key]; sd != nil {
			shotef = memberDisplayName(sd.Member, sd.MemberID)
		}
		values := []any{key, d.Weekday().String(), night, covered, shotef}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	f.SetColWidth(sheet, "A", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("%s-%04d-%02d.xlsx", data.team.Name, year, month)
	return buf, filename, nil
}

func memberDisplayName(m *model.Member, fallback string) string {
	if m != nil {
		return m.Name
	}
	return fallback
}

// ════════════════════════════════════════════════════════════
// ExportMonthICS — all-day events, one per assignment
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportMonthICS(ctx context.Context, teamID string, year, month int) (*bytes.Buffer, string, error) {
	data, err := s.loadMonth(ctx, teamID, year, month)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Shifter//Schedule//EN")

	for i := range data.shifts {
		sh := &data.shifts[i]
		evt := cal.AddEvent(fmt.Sprintf("shift-%s@shifter", sh.ShiftID))
		evt.SetAllDayStartAt(dateOnly(sh.ShiftDate))
		evt.SetAllDayEndAt(dateOnly(sh.ShiftDate).AddDate(0, 0, 1))
		holder := memberDisplayName(sh.Member, sh.MemberID)
		summary := fmt.Sprintf("Night shift: %s", holder)
		if len(sh.Swaps) > 0 {
			original := memberDisplayName(sh.Swaps[0].OriginalMember, sh.Swaps[0].OriginalMemberID)
			summary = fmt.Sprintf("Night shift: %s (covering %s)", holder, original)
		}
		evt.SetSummary(summary)
		evt.SetDtStampTime(sh.CreatedAt)
	}
	for i := range data.shotef {
		sd := &data.shotef[i]
		evt := cal.AddEvent(fmt.Sprintf("shotef-%s@shifter", sd.ShotefDayID))
		evt.SetAllDayStartAt(dateOnly(sd.Date))
		evt.SetAllDayEndAt(dateOnly(sd.Date).AddDate(0, 0, 1))
		evt.SetSummary(fmt.Sprintf("Shotef: %s", memberDisplayName(sd.Member, sd.MemberID)))
		evt.SetDtStampTime(sd.CreatedAt)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s-%04d-%02d.ics", data.team.Name, year, month)
	return buf, filename, nil
}
