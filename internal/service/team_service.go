package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── team errors ──

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrTeamNameTaken = errors.New("team name already in use")
)

// TeamService is the team CRUD surface.
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest) (*model.Team, error)
	Get(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*model.Team, error)
	Delete(ctx context.Context, id string) error
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService creates a TeamService instance.
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest) (*model.Team, error) {
	if _, err := s.repo.Team.GetByName(ctx, req.Name); err == nil {
		return nil, ErrTeamNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	team := &model.Team{
		Name:        req.Name,
		PictureURL:  req.PictureURL,
		Description: req.Description,
	}
	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("create team failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("team created", zap.String("team_id", team.TeamID), zap.String("name", team.Name))
	return team, nil
}

func (s *teamService) Get(ctx context.Context, id string) (*model.Team, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	members, err := s.repo.Member.ListByTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]model.Team, error) {
	return s.repo.Team.List(ctx)
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*model.Team, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if req.Name != nil && *req.Name != team.Name {
		if _, err := s.repo.Team.GetByName(ctx, *req.Name); err == nil {
			return nil, ErrTeamNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		team.Name = *req.Name
	}
	if req.PictureURL != nil {
		team.PictureURL = *req.PictureURL
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("update team failed", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Team.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if err := s.repo.Team.Delete(ctx, id); err != nil {
		s.logger.Error("delete team failed", zap.String("team_id", id), zap.Error(err))
		return err
	}
	return nil
}
