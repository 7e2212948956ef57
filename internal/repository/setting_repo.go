package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tamirmana/Shifter/internal/model"
)

// SettingRepository is the settings data-access interface.
type SettingRepository interface {
	ListGlobal(ctx context.Context) ([]model.Setting, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.Setting, error)
	Upsert(ctx context.Context, s *model.Setting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a SettingRepository instance.
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) ListGlobal(ctx context.Context) ([]model.Setting, error) {
	var list []model.Setting
	err := r.db.WithContext(ctx).
		Where("team_id IS NULL").
		Find(&list).Error
	return list, err
}

func (r *settingRepo) ListByTeam(ctx context.Context, teamID string) ([]model.Setting, error) {
	var list []model.Setting
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Find(&list).Error
	return list, err
}

func (r *settingRepo) Upsert(ctx context.Context, s *model.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(s).Error
}
