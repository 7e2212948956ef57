package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
)

// MemberRepository is the member data-access interface.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	GetByTeamAndName(ctx context.Context, teamID, name string) (*model.Member, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.Member, error)
	ListAll(ctx context.Context) ([]model.Member, error)
	CountByTeam(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id string) error
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a MemberRepository instance.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("member_id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) GetByTeamAndName(ctx context.Context, teamID, name string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND name = ?", teamID, name).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByTeam(ctx context.Context, teamID string) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepo) ListAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Order("team_id ASC, name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepo) CountByTeam(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TeamID string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Select("team_id, COUNT(*) AS n").
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.TeamID] = rw.N
	}
	return counts, nil
}

func (r *memberRepo) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("member_id = ?", id).Delete(&model.Member{}).Error
}
