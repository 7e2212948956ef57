package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ReportService builds the team-wide fairness standing.
type ReportService interface {
	Fairness(ctx context.Context, teamID string) (*dto.FairnessReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a ReportService instance.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

func (s *reportService) Fairness(ctx context.Context, teamID string) (*dto.FairnessReportResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	members, err := s.repo.Member.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	cfg, err := loadScheduleSettings(ctx, s.repo, teamID)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	histFrom := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := &dto.FairnessReportResponse{TeamID: teamID, Entries: []dto.FairnessEntry{}}
	if lb := cfg.lookbackStart(monthStart); lb != nil {
		histFrom = *lb
		resp.LookbackStart = histFrom.Format(model.DateFormat)
	}

	ids := memberIDs(members)
	shifts, err := s.repo.Shift.ListByMembersInRange(ctx, ids, histFrom, today.AddDate(1, 0, 0))
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}
	swaps, err := s.repo.ShiftSwap.ListByMembers(ctx, ids)
	if err != nil {
		s.logger.Error("list swaps failed", zap.Error(err))
		return nil, err
	}

	type tally struct {
		normal, thursday, weekend int
		done, received            int
	}
	tallies := make(map[string]*tally, len(members))
	for _, m := range members {
		tallies[m.MemberID] = &tally{}
	}
	for _, sh := range shifts {
		t := tallies[sh.MemberID]
		if t == nil {
			continue
		}
		switch categoryOf(sh.ShiftDate) {
		case CategoryThursday:
			t.thursday++
		case CategoryWeekend:
			t.weekend++
		default:
			t.normal++
		}
	}
	for _, sw := range swaps {
		if t := tallies[sw.CoveringMemberID]; t != nil {
			t.done++
		}
		if t := tallies[sw.OriginalMemberID]; t != nil {
			t.received++
		}
	}

	for _, m := range members {
		if m.IsLeader {
			continue
		}
		t := tallies[m.MemberID]
		total := t.normal + t.thursday + t.weekend
		resp.Entries = append(resp.Entries, dto.FairnessEntry{
			MemberID:       m.MemberID,
			Name:           m.Name,
			NormalCount:    t.normal,
			ThursdayCount:  t.thursday,
			WeekendCount:   t.weekend,
			TotalShifts:    total,
			CoversDone:     t.done,
			CoversReceived: t.received,
			ShiftCredit:    m.ShiftCredit,
			EffectiveTotal: total - t.done + t.received + m.ShiftCredit,
		})
	}
	sort.SliceStable(resp.Entries, func(i, j int) bool {
		return resp.Entries[i].EffectiveTotal < resp.Entries[j].EffectiveTotal
	})
	return resp, nil
}
