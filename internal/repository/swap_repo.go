package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
)

// ShiftSwapRepository is the swap-ledger data-access interface.
type ShiftSwapRepository interface {
	Create(ctx context.Context, swap *model.ShiftSwap) error
	GetByID(ctx context.Context, id string) (*model.ShiftSwap, error)
	GetByShift(ctx context.Context, shiftID string) (*model.ShiftSwap, error)
	ListByMembers(ctx context.Context, memberIDs []string) ([]model.ShiftSwap, error)
	Delete(ctx context.Context, id string) error
}

type shiftSwapRepo struct {
	db *gorm.DB
}

// NewShiftSwapRepo creates a ShiftSwapRepository instance.
func NewShiftSwapRepo(db *gorm.DB) ShiftSwapRepository {
	return &shiftSwapRepo{db: db}
}

func (r *shiftSwapRepo) Create(ctx context.Context, swap *model.ShiftSwap) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *shiftSwapRepo) GetByID(ctx context.Context, id string) (*model.ShiftSwap, error) {
	var swap model.ShiftSwap
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("swap_id = ?", id).
		First(&swap).Error
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *shiftSwapRepo) GetByShift(ctx context.Context, shiftID string) (*model.ShiftSwap, error) {
	var swap model.ShiftSwap
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		First(&swap).Error
	if err != nil {
		return nil, err
	}
	return &swap, nil
}

func (r *shiftSwapRepo) ListByMembers(ctx context.Context, memberIDs []string) ([]model.ShiftSwap, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var list []model.ShiftSwap
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("original_member_id IN ? OR covering_member_id IN ?", memberIDs, memberIDs).
		Find(&list).Error
	return list, err
}

func (r *shiftSwapRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("swap_id = ?", id).
		Delete(&model.ShiftSwap{}).Error
}
