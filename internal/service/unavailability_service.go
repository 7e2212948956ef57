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

// ── unavailability errors ──

var ErrUnavailabilityNotFound = errors.New("unavailability not found")

// UnavailabilityService manages per-member vacation dates.
type UnavailabilityService interface {
	// Mark one date; an existing (member, date) row has its reason updated.
	Create(ctx context.Context, req *dto.CreateUnavailabilityRequest) (*model.Unavailability, error)
	// Mark several dates at once.
	CreateBulk(ctx context.Context, req *dto.BulkUnavailabilityRequest) ([]model.Unavailability, error)
	// All dates one member is out.
	ListByMember(ctx context.Context, memberID string) ([]model.Unavailability, error)
	Delete(ctx context.Context, id string) error
}

type unavailabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUnavailabilityService creates an UnavailabilityService instance.
func NewUnavailabilityService(repo *repository.Repository, logger *zap.Logger) UnavailabilityService {
	return &unavailabilityService{repo: repo, logger: logger}
}

func (s *unavailabilityService) Create(ctx context.Context, req *dto.CreateUnavailabilityRequest) (*model.Unavailability, error) {
	if _, err := s.repo.Member.GetByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	date, err := time.Parse(model.DateFormat, req.Date)
	if err != nil {
		return nil, err
	}
	return s.upsert(ctx, s.repo, req.MemberID, date, req.Reason)
}

func (s *unavailabilityService) CreateBulk(ctx context.Context, req *dto.BulkUnavailabilityRequest) ([]model.Unavailability, error) {
	if _, err := s.repo.Member.GetByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	var rows []model.Unavailability
	err := s.repo.Transaction(ctx, func(repo *repository.Repository) error {
		for _, raw := range req.Dates {
			date, err := time.Parse(model.DateFormat, raw)
			if err != nil {
				return err
			}
			row, err := s.upsert(ctx, repo, req.MemberID, date, req.Reason)
			if err != nil {
				return err
			}
			rows = append(rows, *row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *unavailabilityService) upsert(ctx context.Context, repo *repository.Repository, memberID string, date time.Time, reason string) (*model.Unavailability, error) {
	date = dateOnly(date)
	existing, err := repo.Unavailability.GetByMemberAndDate(ctx, memberID, date)
	if err == nil {
		existing.Reason = reason
		if err := repo.Unavailability.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	row := &model.Unavailability{MemberID: memberID, Date: date, Reason: reason}
	if err := repo.Unavailability.Create(ctx, row); err != nil {
		s.logger.Error("create unavailability failed", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}
	return row, nil
}

func (s *unavailabilityService) ListByMember(ctx context.Context, memberID string) ([]model.Unavailability, error) {
	if _, err := s.repo.Member.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.repo.Unavailability.ListByMember(ctx, memberID)
}

func (s *unavailabilityService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Unavailability.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnavailabilityNotFound
		}
		return err
	}
	return s.repo.Unavailability.Delete(ctx, id)
}
