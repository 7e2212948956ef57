package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
)

// ShotefDayRepository is the day-duty data-access interface.
type ShotefDayRepository interface {
	Create(ctx context.Context, d *model.ShotefDay) error
	BatchCreate(ctx context.Context, days []model.ShotefDay) error
	GetByID(ctx context.Context, id string) (*model.ShotefDay, error)
	GetByTeamAndDate(ctx context.Context, teamID string, date time.Time) (*model.ShotefDay, error)
	ListByTeamMonth(ctx context.Context, teamID string, year, month int) ([]model.ShotefDay, error)
	ListByMembers(ctx context.Context, memberIDs []string) ([]model.ShotefDay, error)
	ListByMembersSince(ctx context.Context, memberIDs []string, since time.Time) ([]model.ShotefDay, error)
	UpdateMember(ctx context.Context, dayID, memberID string) error
	Delete(ctx context.Context, id string) error
	DeleteByTeamMonth(ctx context.Context, teamID string, year, month int, from time.Time) error
}

type shotefDayRepo struct {
	db *gorm.DB
}

// NewShotefDayRepo creates a ShotefDayRepository instance.
func NewShotefDayRepo(db *gorm.DB) ShotefDayRepository {
	return &shotefDayRepo{db: db}
}

func (r *shotefDayRepo) Create(ctx context.Context, d *model.ShotefDay) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *shotefDayRepo) BatchCreate(ctx context.Context, days []model.ShotefDay) error {
	if len(days) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&days).Error
}

func (r *shotefDayRepo) GetByID(ctx context.Context, id string) (*model.ShotefDay, error) {
	var d model.ShotefDay
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("shotef_day_id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *shotefDayRepo) GetByTeamAndDate(ctx context.Context, teamID string, date time.Time) (*model.ShotefDay, error) {
	var d model.ShotefDay
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND date = ?", teamID, date).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *shotefDayRepo) ListByTeamMonth(ctx context.Context, teamID string, year, month int) ([]model.ShotefDay, error) {
	var list []model.ShotefDay
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("team_id = ? AND year = ? AND month = ?", teamID, year, month).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *shotefDayRepo) ListByMembers(ctx context.Context, memberIDs []string) ([]model.ShotefDay, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.ShotefDay
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *shotefDayRepo) ListByMembersSince(ctx context.Context, memberIDs []string, since time.Time) ([]model.ShotefDay, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.ShotefDay
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Where("date >= ?", since).
		Find(&list).Error
	return list, err
}

func (r *shotefDayRepo) UpdateMember(ctx context.Context, dayID, memberID string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShotefDay{}).
		Where("shotef_day_id = ?", dayID).
		Update("member_id", memberID).Error
}

func (r *shotefDayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("shotef_day_id = ?", id).
		Delete(&model.ShotefDay{}).Error
}

func (r *shotefDayRepo) DeleteByTeamMonth(ctx context.Context, teamID string, year, month int, from time.Time) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND year = ? AND month = ?", teamID, year, month).
		Where("date >= ?", from).
		Delete(&model.ShotefDay{}).Error
}
