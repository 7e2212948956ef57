package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
)

// UnavailabilityRepository is the unavailability data-access interface.
type UnavailabilityRepository interface {
	Create(ctx context.Context, u *model.Unavailability) error
	GetByID(ctx context.Context, id string) (*model.Unavailability, error)
	GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.Unavailability, error)
	ListByMember(ctx context.Context, memberID string) ([]model.Unavailability, error)
	ListByMembersInMonth(ctx context.Context, memberIDs []string, year, month int) ([]model.Unavailability, error)
	Update(ctx context.Context, u *model.Unavailability) error
	Delete(ctx context.Context, id string) error
}

type unavailabilityRepo struct {
	db *gorm.DB
}

// NewUnavailabilityRepo creates an UnavailabilityRepository instance.
func NewUnavailabilityRepo(db *gorm.DB) UnavailabilityRepository {
	return &unavailabilityRepo{db: db}
}

func (r *unavailabilityRepo) Create(ctx context.Context, u *model.Unavailability) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unavailabilityRepo) GetByID(ctx context.Context, id string) (*model.Unavailability, error) {
	var u model.Unavailability
	err := r.db.WithContext(ctx).Where("unavailability_id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unavailabilityRepo) GetByMemberAndDate(ctx context.Context, memberID string, date time.Time) (*model.Unavailability, error) {
	var u model.Unavailability
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, date).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unavailabilityRepo) ListByMember(ctx context.Context, memberID string) ([]model.Unavailability, error) {
	var list []model.Unavailability
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *unavailabilityRepo) ListByMembersInMonth(ctx context.Context, memberIDs []string, year, month int) ([]model.Unavailability, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.Unavailability
	err := r.db.WithContext(ctx).
		Where("member_id IN ?", memberIDs).
		Where("EXTRACT(YEAR FROM date) = ? AND EXTRACT(MONTH FROM date) = ?", year, month).
		Find(&list).Error
	return list, err
}

func (r *unavailabilityRepo) Update(ctx context.Context, u *model.Unavailability) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unavailabilityRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("unavailability_id = ?", id).
		Delete(&model.Unavailability{}).Error
}
