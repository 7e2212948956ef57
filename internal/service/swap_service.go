package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── swap errors ──

var (
	ErrSwapNotFound      = errors.New("swap not found")
	ErrSwapAlreadyActive = errors.New("shift already has an active swap")
	ErrSwapSelfCover     = errors.New("a member cannot cover their own shift")
)

// SwapService records and reverts shift covers and reports balances.
type SwapService interface {
	// Hand one shift to a covering member.
	Create(ctx context.Context, req *dto.CreateSwapRequest) (*dto.SwapView, error)
	// Undo a cover, returning the shift to its original member.
	Revert(ctx context.Context, swapID string) error
	// Active swaps touching a team.
	ListByTeam(ctx context.Context, teamID string) ([]dto.SwapView, error)
	// Per-member cover ledger for a team.
	Balances(ctx context.Context, teamID string) ([]dto.BalanceView, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSwapService creates a SwapService instance.
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, logger: logger}
}

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest) (*dto.SwapView, error) {
	sh, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if len(sh.Swaps) > 0 {
		return nil, ErrSwapAlreadyActive
	}
	if sh.MemberID == req.CoveringMemberID {
		return nil, ErrSwapSelfCover
	}
	covering, err := s.repo.Member.GetByID(ctx, req.CoveringMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if sh.Member != nil && covering.TeamID != sh.Member.TeamID {
		return nil, ErrMemberNotInTeam
	}

	swap := &model.ShiftSwap{
		ShiftID:          sh.ShiftID,
		OriginalMemberID: sh.MemberID,
		CoveringMemberID: covering.MemberID,
	}
	err = s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		if err := repo.ShiftSwap.Create(ctx, swap); err != nil {
			return err
		}
		return repo.Shift.UpdateMember(ctx, sh.ShiftID, covering.MemberID)
	})
	if err != nil {
		s.logger.Error("create swap failed", zap.String("shift_id", req.ShiftID), zap.Error(err))
		return nil, err
	}

	view := &dto.SwapView{
		SwapID:         swap.SwapID,
		ShiftID:        sh.ShiftID,
		Date:           sh.ShiftDate.Format(model.DateFormat),
		OriginalMember: dto.MemberBrief{MemberID: swap.OriginalMemberID},
		CoveringMember: dto.MemberBrief{MemberID: covering.MemberID, Name: covering.Name},
	}
	if sh.Member != nil {
		view.OriginalMember.Name = sh.Member.Name
	}
	return view, nil
}

func (s *swapService) Revert(ctx context.Context, swapID string) error {
	swap, err := s.repo.ShiftSwap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSwapNotFound
		}
		return err
	}
	err = s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		if err := repo.Shift.UpdateMember(ctx, swap.ShiftID, swap.OriginalMemberID); err != nil {
			return err
		}
		return repo.ShiftSwap.Delete(ctx, swapID)
	})
	if err != nil {
		s.logger.Error("revert swap failed", zap.String("swap_id", swapID), zap.Error(err))
	}
	return err
}

func (s *swapService) ListByTeam(ctx context.Context, teamID string) ([]dto.SwapView, error) {
	members, names, err := s.teamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	swaps, err := s.repo.ShiftSwap.ListByMembers(ctx, memberIDs(members))
	if err != nil {
		s.logger.Error("list swaps failed", zap.Error(err))
		return nil, err
	}
	views := make([]dto.SwapView, 0, len(swaps))
	for _, sw := range swaps {
		v := dto.SwapView{
			SwapID:         sw.SwapID,
			ShiftID:        sw.ShiftID,
			OriginalMember: dto.MemberBrief{MemberID: sw.OriginalMemberID, Name: names[sw.OriginalMemberID]},
			CoveringMember: dto.MemberBrief{MemberID: sw.CoveringMemberID, Name: names[sw.CoveringMemberID]},
		}
		if sw.Shift != nil {
			v.Date = sw.Shift.ShiftDate.Format(model.DateFormat)
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *swapService) Balances(ctx context.Context, teamID string) ([]dto.BalanceView, error) {
	members, _, err := s.teamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	swaps, err := s.repo.ShiftSwap.ListByMembers(ctx, memberIDs(members))
	if err != nil {
		s.logger.Error("list swaps failed", zap.Error(err))
		return nil, err
	}
	done := make(map[string]int)
	received := make(map[string]int)
	for _, sw := range swaps {
		done[sw.CoveringMemberID]++
		received[sw.OriginalMemberID]++
	}
	views := make([]dto.BalanceView, 0, len(members))
	for _, m := range members {
		views = append(views, dto.BalanceView{
			MemberID:       m.MemberID,
			Name:           m.Name,
			CoversDone:     done[m.MemberID],
			CoversReceived: received[m.MemberID],
			Balance:        done[m.MemberID] - received[m.MemberID],
		})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Balance > views[j].Balance })
	return views, nil
}

func (s *swapService) teamMembers(ctx context.Context, teamID string) ([]model.Member, map[string]string, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, err
	}
	members, err := s.repo.Member.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	return members, memberNames(members), nil
}
