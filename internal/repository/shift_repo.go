package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
)

// ShiftRepository is the night-shift data-access interface.
type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	BatchCreate(ctx context.Context, shifts []model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.Shift, error)
	GetByTeamAndDate(ctx context.Context, teamID string, date time.Time) (*model.Shift, error)
	ListByMembers(ctx context.Context, memberIDs []string) ([]model.Shift, error)
	ListByMembersInRange(ctx context.Context, memberIDs []string, from, to time.Time) ([]model.Shift, error)
	ListByTeamMonth(ctx context.Context, teamID string, year, month int) ([]model.Shift, error)
	UpdateMember(ctx context.Context, shiftID, memberID string) error
	Delete(ctx context.Context, id string) error
	DeleteByMembersInRange(ctx context.Context, memberIDs []string, from, to time.Time) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo creates a ShiftRepository instance.
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Swaps").
		Where("shift_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND shift_date = ?", memberID, date).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) GetByTeamAndDate(ctx context.Context, teamID string, date time.Time) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON members.member_id = shifts.member_id").
		Where("members.team_id = ? AND shifts.shift_date = ?", teamID, date).
		Preload("Member").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) ListByMembers(ctx context.Context, memberIDs []string) ([]model.Shift, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.Shift
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Order("shift_date ASC").
		Find(&list).Error
	return list, err
}

func (r *shiftRepo) ListByMembersInRange(ctx context.Context, memberIDs []string, from, to time.Time) ([]model.Shift, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.Shift
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Where("shift_date >= ? AND shift_date <= ?", from, to).
		Order("shift_date ASC").
		Find(&list).Error
	return list, err
}

func (r *shiftRepo) ListByTeamMonth(ctx context.Context, teamID string, year, month int) ([]model.Shift, error) {
	var list []model.Shift
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON members.member_id = shifts.member_id").
		Where("members.team_id = ?", teamID).
		Where("EXTRACT(YEAR FROM shifts.shift_date) = ? AND EXTRACT(MONTH FROM shifts.shift_date) = ?", year, month).
		Preload("Member").
		Preload("Swaps").
		Preload("Swaps.OriginalMember").
		Order("shifts.shift_date ASC").
		Find(&list).Error
	return list, err
}

func (r *shiftRepo) UpdateMember(ctx context.Context, shiftID, memberID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ?", shiftID).
		Update("member_id", memberID).Error
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		Delete(&model.Shift{}).Error
}

func (r *shiftRepo) DeleteByMembersInRange(ctx context.Context, memberIDs []string, from, to time.Time) error {
	if len(memberIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Where("shift_date >= ? AND shift_date <= ?", from, to).
		Delete(&model.Shift{}).Error
}
