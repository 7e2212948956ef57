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
)

// ── shotef errors ──

var (
	ErrShotefDayNotFound = errors.New("shotef day not found")
	ErrShotefWeekendDate = errors.New("shotef runs Sunday through Thursday only")
	ErrShotefDayTaken    = errors.New("the team already has a shotef day on this date")
)

// isShotefWeekday reports whether the date belongs to the Sun-Thu rotation.
func isShotefWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Friday && wd != time.Saturday
}

// weekSunday returns the Sunday opening the week that contains d.
func weekSunday(d time.Time) time.Time {
	return dateOnly(d).AddDate(0, 0, -int(d.Weekday()))
}

// ════════════════════════════════════════════════════════════
// month generation (runs inside the schedule transaction)
// ════════════════════════════════════════════════════════════

// generateShotefMonth rebuilds the Sun-Thu duty rotation from start onward.
// Each week gets one holder, the member with the lowest effective duty count
// this period, avoiding repeat holders within the month while possible. Days
// the holder is out produce a substitution need instead of a row. Ties on
// the count break through rng so equal members rotate across runs.
func generateShotefMonth(
	ctx context.Context,
	repo *repository.Repository,
	teamID string,
	members []model.Member,
	cfg *ScheduleSettings,
	out unavailSet,
	year, month int,
	start time.Time,
	rng *rand.Rand,
) ([]dto.ShotefDayView, []dto.ShotefSubstitutionNeed, error) {

	existing, err := repo.ShotefDay.ListByTeamMonth(ctx, teamID, year, month)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.ShotefDay.DeleteByTeamMonth(ctx, teamID, year, month, start); err != nil {
		return nil, nil, err
	}

	ids := memberIDs(members)
	since := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if cfg.ShotefSettledAt != nil {
		since = *cfg.ShotefSettledAt
	}
	served, err := repo.ShotefDay.ListByMembersSince(ctx, ids, since)
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[string]int, len(members))
	for _, m := range members {
		counts[m.MemberID] = m.ShotefCredit
	}
	for _, d := range served {
		counts[d.MemberID]++
	}

	// holders already used this month keep their kept days and are avoided
	// for the regenerated weeks when someone fresh is available
	usedHolders := make(map[string]bool)
	for _, d := range existing {
		if dateOnly(d.Date).Before(start) {
			usedHolders[d.MemberID] = true
		}
	}

	_, monthEnd := monthBounds(year, month)
	blocks := make(map[time.Time][]time.Time)
	var blockKeys []time.Time
	for d := start; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		if !isShotefWeekday(d) {
			continue
		}
		key := weekSunday(d)
		if _, ok := blocks[key]; !ok {
			blockKeys = append(blockKeys, key)
		}
		blocks[key] = append(blocks[key], d)
	}
	sort.Slice(blockKeys, func(i, j int) bool { return blockKeys[i].Before(blockKeys[j]) })

	var (
		rows  []model.ShotefDay
		views []dto.ShotefDayView
		needs []dto.ShotefSubstitutionNeed
	)
	names := memberNames(members)

	for _, key := range blockKeys {
		days := blocks[key]
		holder := pickShotefHolder(members, counts, usedHolders, out, days, rng)
		if holder == "" {
			continue // no members in rotation at all
		}
		usedHolders[holder] = true
		for _, day := range days {
			if out.out(holder, day) {
				needs = append(needs, buildShotefNeed(members, counts, out, holder, names[holder], day, rng))
				continue
			}
			rows = append(rows, model.ShotefDay{
				TeamID:   teamID,
				MemberID: holder,
				Date:     day,
				Year:     year,
				Month:    month,
			})
			counts[holder]++
		}
	}

	if err := repo.ShotefDay.BatchCreate(ctx, rows); err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		views = append(views, dto.ShotefDayView{
			ShotefDayID: r.ShotefDayID,
			Date:        r.Date.Format(model.DateFormat),
			DayOfWeek:   r.Date.Weekday().String(),
			Member:      dto.MemberBrief{MemberID: r.MemberID, Name: names[r.MemberID]},
		})
	}
	return views, needs, nil
}

// pickShotefHolder chooses the week's holder: lowest effective count first,
// preferring members who have not held a week this month, and skipping
// anyone out for the entire block. Tied members are shuffled first so the
// pick rotates instead of following stored order.
func pickShotefHolder(members []model.Member, counts map[string]int, used map[string]bool, out unavailSet, days []time.Time, rng *rand.Rand) string {
	candidates := make([]model.Member, 0, len(members))
	for _, m := range members {
		if m.IsLeader {
			continue
		}
		allOut := true
		for _, d := range days {
			if !out.out(m.MemberID, d) {
				allOut = false
				break
			}
		}
		if !allOut {
			candidates = append(candidates, m)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if used[a.MemberID] != used[b.MemberID] {
			return !used[a.MemberID]
		}
		return counts[a.MemberID] < counts[b.MemberID]
	})
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].MemberID
}

func buildShotefNeed(members []model.Member, counts map[string]int, out unavailSet, holderID, holderName string, day time.Time, rng *rand.Rand) dto.ShotefSubstitutionNeed {
	need := dto.ShotefSubstitutionNeed{
		Date:       day.Format(model.DateFormat),
		DayOfWeek:  day.Weekday().String(),
		HolderID:   holderID,
		HolderName: holderName,
		Reason:     out.reason(holderID, day),
		Candidates: []dto.ShotefCandidateView{},
	}
	for _, m := range members {
		if m.IsLeader || m.MemberID == holderID {
			continue
		}
		need.Candidates = append(need.Candidates, dto.ShotefCandidateView{
			MemberID:      m.MemberID,
			Name:          m.Name,
			ShotefCount:   counts[m.MemberID],
			IsUnavailable: out.out(m.MemberID, day),
		})
	}
	rng.Shuffle(len(need.Candidates), func(i, j int) {
		need.Candidates[i], need.Candidates[j] = need.Candidates[j], need.Candidates[i]
	})
	sort.SliceStable(need.Candidates, func(i, j int) bool {
		a, b := need.Candidates[i], need.Candidates[j]
		if a.IsUnavailable != b.IsUnavailable {
			return !a.IsUnavailable
		}
		return a.ShotefCount < b.ShotefCount
	})
	return need
}

// ════════════════════════════════════════════════════════════
// ShotefService — manual surface over the rotation
// ════════════════════════════════════════════════════════════

// ShotefService exposes the day-duty rotation outside generation.
type ShotefService interface {
	// Move one day duty to another member.
	Reassign(ctx context.Context, dayID string, req *dto.ReassignShotefRequest) (*dto.ShotefDayView, error)
	// Place one member on several day duties by hand.
	AddDays(ctx context.Context, req *dto.AddShotefDaysRequest) ([]dto.ShotefDayView, error)
	// Remove one day duty.
	DeleteDay(ctx context.Context, dayID string) error
	// Per-member standing in the current accounting period.
	History(ctx context.Context, teamID string) (*dto.ShotefHistoryResponse, error)
	// Close the period: stamp today and zero every member's credit.
	Settle(ctx context.Context, req *dto.SettleShotefRequest) (*dto.SettleShotefResponse, error)
}

type shotefService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewShotefService creates a ShotefService instance.
func NewShotefService(repo *repository.Repository, logger *zap.Logger) ShotefService {
	return &shotefService{repo: repo, logger: logger, now: time.Now}
}

func (s *shotefService) Reassign(ctx context.Context, dayID string, req *dto.ReassignShotefRequest) (*dto.ShotefDayView, error) {
	day, err := s.repo.ShotefDay.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShotefDayNotFound
		}
		return nil, err
	}
	target, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if target.TeamID != day.TeamID {
		return nil, ErrMemberNotInTeam
	}
	if err := s.repo.ShotefDay.UpdateMember(ctx, dayID, target.MemberID); err != nil {
		s.logger.Error("reassign shotef day failed", zap.String("shotef_day_id", dayID), zap.Error(err))
		return nil, err
	}
	return &dto.ShotefDayView{
		ShotefDayID: day.ShotefDayID,
		Date:        day.Date.Format(model.DateFormat),
		DayOfWeek:   day.Date.Weekday().String(),
		Member:      dto.MemberBrief{MemberID: target.MemberID, Name: target.Name},
	}, nil
}

func (s *shotefService) AddDays(ctx context.Context, req *dto.AddShotefDaysRequest) ([]dto.ShotefDayView, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.TeamID != req.TeamID {
		return nil, ErrMemberNotInTeam
	}

	var views []dto.ShotefDayView
	err = s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		for _, raw := range req.Dates {
			date, err := time.Parse(model.DateFormat, raw)
			if err != nil {
				return err
			}
			date = dateOnly(date)
			if !isShotefWeekday(date) {
				return ErrShotefWeekendDate
			}
			if _, err := repo.ShotefDay.GetByTeamAndDate(ctx, req.TeamID, date); err == nil {
				return ErrShotefDayTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row := &model.ShotefDay{
				TeamID:   req.TeamID,
				MemberID: member.MemberID,
				Date:     date,
				Year:     date.Year(),
				Month:    int(date.Month()),
			}
			if err := repo.ShotefDay.Create(ctx, row); err != nil {
				return err
			}
			views = append(views, dto.ShotefDayView{
				ShotefDayID: row.ShotefDayID,
				Date:        row.Date.Format(model.DateFormat),
				DayOfWeek:   row.Date.Weekday().String(),
				Member:      dto.MemberBrief{MemberID: member.MemberID, Name: member.Name},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *shotefService) DeleteDay(ctx context.Context, dayID string) error {
	if _, err := s.repo.ShotefDay.GetByID(ctx, dayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShotefDayNotFound
		}
		return err
	}
	return s.repo.ShotefDay.Delete(ctx, dayID)
}

func (s *shotefService) History(ctx context.Context, teamID string) (*dto.ShotefHistoryResponse, error) {
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
	since := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := &dto.ShotefHistoryResponse{TeamID: teamID, Entries: []dto.ShotefHistoryEntry{}}
	if cfg.ShotefSettledAt != nil {
		since = *cfg.ShotefSettledAt
		resp.SettledAt = since.Format(model.DateFormat)
	}
	served, err := s.repo.ShotefDay.ListByMembersSince(ctx, memberIDs(members), since)
	if err != nil {
		s.logger.Error("list shotef history failed", zap.Error(err))
		return nil, err
	}
	days := make(map[string]int)
	for _, d := range served {
		days[d.MemberID]++
	}
	for _, m := range members {
		if m.IsLeader {
			continue
		}
		resp.Entries = append(resp.Entries, dto.ShotefHistoryEntry{
			MemberID:       m.MemberID,
			Name:           m.Name,
			DaysServed:     days[m.MemberID],
			ShotefCredit:   m.ShotefCredit,
			EffectiveCount: days[m.MemberID] + m.ShotefCredit,
		})
	}
	sort.SliceStable(resp.Entries, func(i, j int) bool {
		return resp.Entries[i].EffectiveCount < resp.Entries[j].EffectiveCount
	})
	return resp, nil
}

func (s *shotefService) Settle(ctx context.Context, req *dto.SettleShotefRequest) (*dto.SettleShotefResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	today := dateOnly(s.now()).Format(model.DateFormat)

	err := s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		teamID := req.TeamID
		row := &model.Setting{TeamID: &teamID, Key: model.SettingShotefSettledAt, Value: today}
		if err := repo.Setting.Upsert(ctx, row); err != nil {
			return err
		}
		members, err := repo.Member.ListByTeam(ctx, req.TeamID)
		if err != nil {
			return err
		}
		for i := range members {
			if members[i].ShotefCredit == 0 {
				continue
			}
			members[i].ShotefCredit = 0
			if err := repo.Member.Update(ctx, &members[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("settle shotef failed", zap.String("team_id", req.TeamID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("shotef settled", zap.String("team_id", req.TeamID), zap.String("settled_at", today))
	return &dto.SettleShotefResponse{TeamID: req.TeamID, SettledAt: today}, nil
}
