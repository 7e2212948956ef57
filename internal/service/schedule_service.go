package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
	"github.com/tamirmana/Shifter/pkg/lock"
)

// ── schedule errors ──

var (
	ErrPastMonth          = errors.New("cannot generate a month that has fully passed")
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftDateTaken     = errors.New("the team already has a shift on this date")
	ErrDuplicateShift     = errors.New("the member already has a shift on this date")
	ErrShiftHasActiveSwap = errors.New("shift has an active swap; revert it first")
	ErrMemberNotInTeam    = errors.New("member does not belong to this team")
	ErrNotPastDate        = errors.New("backfill dates must be in the past")
)

// ScheduleService drives the night rotation.
type ScheduleService interface {
	// Regenerate one team's month from today (or the 1st) onward.
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	// Stored month, nights and day duties together.
	GetMonth(ctx context.Context, teamID string, year, month int) (*dto.MonthScheduleResponse, error)
	// Every month the team has assignments in, newest first.
	ListMonths(ctx context.Context, teamID string) (*dto.MonthListResponse, error)
	// Drop every assignment of one month.
	DeleteMonth(ctx context.Context, teamID string, year, month int) error
	// Place one member by hand; a weekend night fills its pair too.
	AssignManual(ctx context.Context, teamID string, req *dto.AssignShiftRequest) ([]dto.ShiftView, error)
	// Move an existing shift to another member.
	Reassign(ctx context.Context, shiftID string, req *dto.ReassignShiftRequest) (*dto.ShiftView, error)
	// Remove one shift.
	DeleteShift(ctx context.Context, shiftID string) error
	// Backfill history nights for one member.
	AddPastShifts(ctx context.Context, req *dto.AddPastShiftsRequest) ([]dto.ShiftView, error)
}

type scheduleService struct {
	repo   *repository.Repository
	locks  *lock.Keyed
	logger *zap.Logger

	// injected for deterministic tests
	now     func() time.Time
	newRand func() *rand.Rand
}

// NewScheduleService creates a ScheduleService instance.
func NewScheduleService(repo *repository.Repository, locks *lock.Keyed, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:   repo,
		locks:  locks,
		logger: logger,
		now:    time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// ════════════════════════════════════════════════════════════
// Generate — regenerate one month, fairness-ranked
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("load team failed", zap.Error(err))
		return nil, err
	}

	today := dateOnly(s.now())
	monthStart, monthEnd := monthBounds(req.Year, req.Month)
	if monthEnd.Before(today) {
		return nil, ErrPastMonth
	}
	start := monthStart
	if today.After(monthStart) {
		start = today
	}

	s.locks.Lock(req.TeamID)
	defer s.locks.Unlock(req.TeamID)

	resp := &dto.GenerateScheduleResponse{
		TeamID:                  req.TeamID,
		Year:                    req.Year,
		Month:                   req.Month,
		Assignments:             []dto.ShiftView{},
		Suggestions:             []dto.SuggestionView{},
		ShotefAssignments:       []dto.ShotefDayView{},
		ShotefSubstitutionNeeds: []dto.ShotefSubstitutionNeed{},
	}

	err := s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		members, err := repo.Member.ListByTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		cfg, err := loadScheduleSettings(ctx, repo, req.TeamID)
		if err != nil {
			return err
		}
		ids := memberIDs(members)
		names := memberNames(members)

		unavailRows, err := repo.Unavailability.ListByMembersInMonth(ctx, ids, req.Year, req.Month)
		if err != nil {
			return err
		}
		out := newUnavailSet(unavailRows)

		histFrom := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
		if lb := cfg.lookbackStart(monthStart); lb != nil {
			histFrom = *lb
		}
		history, err := repo.Shift.ListByMembersInRange(ctx, ids, histFrom, monthStart.AddDate(0, 0, -1))
		if err != nil {
			return err
		}
		var kept []model.Shift
		if start.After(monthStart) {
			kept, err = repo.Shift.ListByMembersInRange(ctx, ids, monthStart, start.AddDate(0, 0, -1))
			if err != nil {
				return err
			}
		}
		swaps, err := repo.ShiftSwap.ListByMembers(ctx, ids)
		if err != nil {
			return err
		}

		if err := repo.Shift.DeleteByMembersInRange(ctx, ids, start, monthEnd); err != nil {
			return err
		}

		ledger := newFairnessLedger(members, history, kept, swaps, histFrom)
		rng := s.newRand()

		var newShifts []model.Shift
		assign := func(memberID string, date time.Time, chargeCap bool) {
			ledger.record(memberID, date, chargeCap)
			newShifts = append(newShifts, model.Shift{MemberID: memberID, ShiftDate: date})
		}

		d := start
		for !d.After(monthEnd) {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch {
			case d.Weekday() == time.Friday && d.Before(monthEnd):
				// Friday decides the whole weekend pair.
				sat := d.AddDate(0, 0, 1)
				ranked := ledger.rank(members, CategoryWeekend, rng)
				picked := false
				for _, m := range ranked {
					if eligible(ledger, m, []time.Time{d, sat}, CategoryWeekend, cfg, out) {
						assign(m.MemberID, d, true)
						assign(m.MemberID, sat, false)
						picked = true
						break
					}
				}
				if !picked {
					resp.Suggestions = append(resp.Suggestions,
						buildSuggestion(ledger, members, d, CategoryWeekend, cfg, out),
						buildSuggestion(ledger, members, sat, CategoryWeekend, cfg, out))
				}
				d = d.AddDate(0, 0, 2)
				continue

			case d.Weekday() == time.Saturday:
				// A Saturday reached directly continues its Friday holder
				// when one exists. The 1st continues last month's Friday,
				// charging the weekend cap; a kept Friday already charged it.
				holder := holderOn(append(history, kept...), d.AddDate(0, 0, -1))
				if holder != "" && !out.out(holder, d) {
					if d.Day() != 1 {
						assign(holder, d, false)
						d = d.AddDate(0, 0, 1)
						continue
					}
					if t := ledger.tally[holder]; t != nil && t.monthCat[CategoryWeekend] < cfg.MaxWeekendShifts {
						assign(holder, d, true)
						d = d.AddDate(0, 0, 1)
						continue
					}
				}
				fallthrough

			default:
				cat := categoryOf(d)
				ranked := ledger.rank(members, cat, rng)
				picked := false
				for _, m := range ranked {
					if eligible(ledger, m, []time.Time{d}, cat, cfg, out) {
						assign(m.MemberID, d, true)
						picked = true
						break
					}
				}
				if !picked {
					resp.Suggestions = append(resp.Suggestions, buildSuggestion(ledger, members, d, cat, cfg, out))
				}
				d = d.AddDate(0, 0, 1)
			}
		}

		if err := repo.Shift.BatchCreate(ctx, newShifts); err != nil {
			return err
		}
		for _, sh := range newShifts {
			resp.Assignments = append(resp.Assignments, dto.ShiftView{
				ShiftID:   sh.ShiftID,
				Date:      sh.ShiftDate.Format(model.DateFormat),
				DayOfWeek: sh.ShiftDate.Weekday().String(),
				Category:  string(categoryOf(sh.ShiftDate)),
				Member:    dto.MemberBrief{MemberID: sh.MemberID, Name: names[sh.MemberID]},
			})
		}

		if cfg.ShotefEnabled {
			days, needs, err := generateShotefMonth(ctx, repo, req.TeamID, members, cfg, out, req.Year, req.Month, start, rng)
			if err != nil {
				return err
			}
			resp.ShotefAssignments = days
			resp.ShotefSubstitutionNeeds = needs
		}
		return nil
	})
	if err != nil {
		s.logger.Error("generate schedule failed",
			zap.String("team_id", req.TeamID),
			zap.Int("year", req.Year), zap.Int("month", req.Month),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("schedule generated",
		zap.String("team_id", req.TeamID),
		zap.Int("year", req.Year), zap.Int("month", req.Month),
		zap.Int("assignments", len(resp.Assignments)),
		zap.Int("suggestions", len(resp.Suggestions)))
	return resp, nil
}

// holderOn finds who holds a given date in an in-memory shift list.
func holderOn(shifts []model.Shift, date time.Time) string {
	day := dateOnly(date)
	for _, sh := range shifts {
		if dateOnly(sh.ShiftDate).Equal(day) {
			return sh.MemberID
		}
	}
	return ""
}

func memberIDs(members []model.Member) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.MemberID
	}
	return ids
}

func memberNames(members []model.Member) map[string]string {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.MemberID] = m.Name
	}
	return names
}

// ── month views ──

func (s *scheduleService) GetMonth(ctx context.Context, teamID string, year, month int) (*dto.MonthScheduleResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
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

	resp := &dto.MonthScheduleResponse{
		TeamID: teamID,
		Year:   year,
		Month:  month,
		Shifts: make([]dto.ShiftView, 0, len(shifts)),
		Shotef: make([]dto.ShotefDayView, 0, len(shotef)),
	}
	for i := range shifts {
		resp.Shifts = append(resp.Shifts, shiftView(&shifts[i]))
	}
	for _, d := range shotef {
		v := dto.ShotefDayView{
			ShotefDayID: d.ShotefDayID,
			Date:        d.Date.Format(model.DateFormat),
			DayOfWeek:   d.Date.Weekday().String(),
			Member:      dto.MemberBrief{MemberID: d.MemberID},
		}
		if d.Member != nil {
			v.Member.Name = d.Member.Name
		}
		resp.Shotef = append(resp.Shotef, v)
	}
	return resp, nil
}

func (s *scheduleService) ListMonths(ctx context.Context, teamID string) (*dto.MonthListResponse, error) {
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
	shifts, err := s.repo.Shift.ListByMembers(ctx, memberIDs(members))
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}
	shotef, err := s.repo.ShotefDay.ListByMembers(ctx, memberIDs(members))
	if err != nil {
		s.logger.Error("list shotef days failed", zap.Error(err))
		return nil, err
	}

	type ym struct{ year, month int }
	summaries := make(map[ym]*dto.MonthSummary)
	touch := func(year, month int) *dto.MonthSummary {
		key := ym{year, month}
		if summaries[key] == nil {
			summaries[key] = &dto.MonthSummary{Year: year, Month: month}
		}
		return summaries[key]
	}
	for _, sh := range shifts {
		touch(sh.ShiftDate.Year(), int(sh.ShiftDate.Month())).ShiftCount++
	}
	for _, d := range shotef {
		touch(d.Year, d.Month).ShotefCount++
	}

	resp := &dto.MonthListResponse{TeamID: teamID, Months: []dto.MonthSummary{}}
	for _, s := range summaries {
		resp.Months = append(resp.Months, *s)
	}
	sort.Slice(resp.Months, func(i, j int) bool {
		a, b := resp.Months[i], resp.Months[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})
	return resp, nil
}

// shiftView renders one shift. A swapped shift shows the originally
// scheduled member, with the current holder under covered_by.
func shiftView(sh *model.Shift) dto.ShiftView {
	v := dto.ShiftView{
		ShiftID:   sh.ShiftID,
		Date:      sh.ShiftDate.Format(model.DateFormat),
		DayOfWeek: sh.ShiftDate.Weekday().String(),
		Category:  string(categoryOf(sh.ShiftDate)),
		Member:    dto.MemberBrief{MemberID: sh.MemberID},
	}
	if sh.Member != nil {
		v.Member.Name = sh.Member.Name
	}
	if len(sh.Swaps) > 0 {
		sw := sh.Swaps[0]
		covered := v.Member
		v.Member = dto.MemberBrief{MemberID: sw.OriginalMemberID}
		if sw.OriginalMember != nil {
			v.Member.Name = sw.OriginalMember.Name
		}
		v.CoveredBy = &covered
	}
	return v
}

func (s *scheduleService) DeleteMonth(ctx context.Context, teamID string, year, month int) error {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	s.locks.Lock(teamID)
	defer s.locks.Unlock(teamID)

	monthStart, monthEnd := monthBounds(year, month)
	return s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		members, err := repo.Member.ListByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if err := repo.Shift.DeleteByMembersInRange(ctx, memberIDs(members), monthStart, monthEnd); err != nil {
			return err
		}
		return repo.ShotefDay.DeleteByTeamMonth(ctx, teamID, year, month, monthStart)
	})
}

// ── manual adjustments ──

func (s *scheduleService) AssignManual(ctx context.Context, teamID string, req *dto.AssignShiftRequest) ([]dto.ShiftView, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.TeamID != teamID {
		return nil, ErrMemberNotInTeam
	}
	date, err := time.Parse(model.DateFormat, req.Date)
	if err != nil {
		return nil, err
	}
	date = dateOnly(date)

	s.locks.Lock(teamID)
	defer s.locks.Unlock(teamID)

	dates := []time.Time{date}
	switch date.Weekday() {
	case time.Friday:
		dates = append(dates, date.AddDate(0, 0, 1))
	case time.Saturday:
		dates = append(dates, date.AddDate(0, 0, -1))
	}

	var views []dto.ShiftView
	err = s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		for i, d := range dates {
			_, err := repo.Shift.GetByTeamAndDate(ctx, teamID, d)
			if err == nil {
				if i == 0 {
					return ErrShiftDateTaken
				}
				continue // the pair night is already held, the requested night stands alone
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			sh := &model.Shift{MemberID: member.MemberID, ShiftDate: d}
			if err := repo.Shift.Create(ctx, sh); err != nil {
				return err
			}
			sh.Member = member
			views = append(views, shiftView(sh))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *scheduleService) Reassign(ctx context.Context, shiftID string, req *dto.ReassignShiftRequest) (*dto.ShiftView, error) {
	sh, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if len(sh.Swaps) > 0 {
		return nil, ErrShiftHasActiveSwap
	}
	target, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if sh.Member != nil && target.TeamID != sh.Member.TeamID {
		return nil, ErrMemberNotInTeam
	}
	if _, err := s.repo.Shift.GetByMemberAndDate(ctx, target.MemberID, sh.ShiftDate); err == nil {
		return nil, ErrDuplicateShift
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.repo.Shift.UpdateMember(ctx, shiftID, target.MemberID); err != nil {
		s.logger.Error("reassign shift failed", zap.String("shift_id", shiftID), zap.Error(err))
		return nil, err
	}
	sh.MemberID = target.MemberID
	sh.Member = target
	v := shiftView(sh)
	return &v, nil
}

func (s *scheduleService) DeleteShift(ctx context.Context, shiftID string) error {
	if _, err := s.repo.Shift.GetByID(ctx, shiftID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		return err
	}
	return s.repo.Shift.Delete(ctx, shiftID)
}

func (s *scheduleService) AddPastShifts(ctx context.Context, req *dto.AddPastShiftsRequest) ([]dto.ShiftView, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	today := dateOnly(s.now())

	var views []dto.ShiftView
	err = s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		for _, raw := range req.Dates {
			date, err := time.Parse(model.DateFormat, raw)
			if err != nil {
				return err
			}
			date = dateOnly(date)
			if !date.Before(today) {
				return ErrNotPastDate
			}
			if _, err := repo.Shift.GetByMemberAndDate(ctx, member.MemberID, date); err == nil {
				return ErrDuplicateShift
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			sh := &model.Shift{MemberID: member.MemberID, ShiftDate: date}
			if err := repo.Shift.Create(ctx, sh); err != nil {
				return err
			}
			sh.Member = member
			views = append(views, shiftView(sh))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
