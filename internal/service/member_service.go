package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── member errors ──

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberNameTaken = errors.New("member name already in use within this team")
)

// MemberService is the member CRUD surface.
type MemberService interface {
	Create(ctx context.Context, req *dto.CreateMemberRequest) (*model.Member, error)
	Get(ctx context.Context, id string) (*model.Member, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.Member, error)
	Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*model.Member, error)
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMemberService creates a MemberService instance.
func NewMemberService(repo *repository.Repository, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, logger: logger, now: time.Now}
}

func (s *memberService) Create(ctx context.Context, req *dto.CreateMemberRequest) (*model.Member, error) {
	if _, err := s.repo.Team.GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Member.GetByTeamAndName(ctx, req.TeamID, req.Name); err == nil {
		return nil, ErrMemberNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	credit, err := s.joinCredit(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	member := &model.Member{
		TeamID:           req.TeamID,
		Name:             req.Name,
		SleepsInBuilding: req.SleepsInBuilding,
		IsLeader:         req.IsLeader,
		PhotoURL:         req.PhotoURL,
		ShiftCredit:      credit,
	}
	if err := s.repo.Member.Create(ctx, member); err != nil {
		s.logger.Error("create member failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("member created",
		zap.String("member_id", member.MemberID),
		zap.String("team_id", member.TeamID),
		zap.Int("shift_credit", member.ShiftCredit))
	return member, nil
}

// joinCredit computes the starting credit for a new member: the lowest
// effective night count already in the team, so the newcomer enters level
// with the least-loaded member instead of owing the whole backlog. The
// result may be negative when the floor member carries debt. Counting
// honors the team's lookback window, like generation does.
func (s *memberService) joinCredit(ctx context.Context, teamID string) (int, error) {
	members, err := s.repo.Member.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	rotating := make([]model.Member, 0, len(members))
	for _, m := range members {
		if !m.IsLeader {
			rotating = append(rotating, m)
		}
	}
	if len(rotating) == 0 {
		return 0, nil
	}
	cfg, err := loadScheduleSettings(ctx, s.repo, teamID)
	if err != nil {
		return 0, err
	}
	var cutoff *time.Time
	if cfg.JusticeLookbackMonths > 0 {
		c := dateOnly(s.now()).AddDate(0, -cfg.JusticeLookbackMonths, 0)
		cutoff = &c
	}
	shifts, err := s.repo.Shift.ListByMembers(ctx, memberIDs(rotating))
	if err != nil {
		return 0, err
	}
	counts := make(map[string]int)
	for _, sh := range shifts {
		if cutoff != nil && dateOnly(sh.ShiftDate).Before(*cutoff) {
			continue
		}
		counts[sh.MemberID]++
	}
	min := 0
	for i, m := range rotating {
		eff := counts[m.MemberID] + m.ShiftCredit
		if i == 0 || eff < min {
			min = eff
		}
	}
	return min, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) ListByTeam(ctx context.Context, teamID string) ([]model.Member, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.repo.Member.ListByTeam(ctx, teamID)
}

func (s *memberService) Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if req.Name != nil && *req.Name != member.Name {
		if _, err := s.repo.Member.GetByTeamAndName(ctx, member.TeamID, *req.Name); err == nil {
			return nil, ErrMemberNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		member.Name = *req.Name
	}
	if req.SleepsInBuilding != nil {
		member.SleepsInBuilding = *req.SleepsInBuilding
	}
	if req.IsLeader != nil {
		member.IsLeader = *req.IsLeader
	}
	if req.PhotoURL != nil {
		member.PhotoURL = *req.PhotoURL
	}
	if req.ShiftCredit != nil {
		member.ShiftCredit = *req.ShiftCredit
	}
	if req.ShotefCredit != nil {
		member.ShotefCredit = *req.ShotefCredit
	}
	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.logger.Error("update member failed", zap.String("member_id", id), zap.Error(err))
		return nil, err
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Member.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if err := s.repo.Member.Delete(ctx, id); err != nil {
		s.logger.Error("delete member failed", zap.String("member_id", id), zap.Error(err))
		return err
	}
	return nil
}
