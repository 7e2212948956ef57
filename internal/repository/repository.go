package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	Team           TeamRepository
	Member         MemberRepository
	Unavailability UnavailabilityRepository
	Shift          ShiftRepository
	ShiftSwap      ShiftSwapRepository
	ShotefDay      ShotefDayRepository
	Setting        SettingRepository
}

// NewRepository builds the aggregate over one gorm connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Team:           NewTeamRepo(db),
		Member:         NewMemberRepo(db),
		Unavailability: NewUnavailabilityRepo(db),
		Shift:          NewShiftRepo(db),
		ShiftSwap:      NewShiftSwapRepo(db),
		ShotefDay:      NewShotefDayRepo(db),
		Setting:        NewSettingRepo(db),
	}
}

// Transaction runs fn against a transactional copy of the aggregate; any
// error rolls back every write made inside fn. Aggregates assembled without
// a database (service tests over mocks) run fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
