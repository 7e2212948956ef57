package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── settings errors ──

var (
	ErrUnknownSettingKey   = errors.New("unknown setting key")
	ErrInvalidSettingValue = errors.New("invalid setting value")
)

// ScheduleSettings is the resolved, typed configuration the engine runs on.
type ScheduleSettings struct {
	MaxNormalShifts       int
	MaxThursdayShifts     int
	MaxWeekendShifts      int
	JusticeLookbackMonths int
	MinDaysBetweenShifts  int
	ShotefEnabled         bool
	ShotefSettledAt       *time.Time
}

// lookbackStart returns the first day history still counts from, relative
// to the first day of the target month. Zero months means all history.
func (s *ScheduleSettings) lookbackStart(monthStart time.Time) *time.Time {
	if s.JusticeLookbackMonths <= 0 {
		return nil
	}
	from := monthStart.AddDate(0, -s.JusticeLookbackMonths, 0)
	return &from
}

// resolveSettings merges built-in defaults, global rows, then team rows.
func resolveSettings(ctx context.Context, repo *repository.Repository, teamID string) (map[string]string, error) {
	values := make(map[string]string, len(model.SettingsDefaults))
	for k, v := range model.SettingsDefaults {
		values[k] = v
	}
	global, err := repo.Setting.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range global {
		values[s.Key] = s.Value
	}
	if teamID != "" {
		team, err := repo.Setting.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		for _, s := range team {
			values[s.Key] = s.Value
		}
	}
	return values, nil
}

// loadScheduleSettings resolves and types the engine configuration for one
// team. Malformed stored values fall back to the built-in default.
func loadScheduleSettings(ctx context.Context, repo *repository.Repository, teamID string) (*ScheduleSettings, error) {
	values, err := resolveSettings(ctx, repo, teamID)
	if err != nil {
		return nil, err
	}
	atoi := func(key string) int {
		n, err := strconv.Atoi(values[key])
		if err != nil {
			n, _ = strconv.Atoi(model.SettingsDefaults[key])
		}
		return n
	}
	cfg := &ScheduleSettings{
		MaxNormalShifts:       atoi(model.SettingMaxNormalShifts),
		MaxThursdayShifts:     atoi(model.SettingMaxThursdayShifts),
		MaxWeekendShifts:      atoi(model.SettingMaxWeekendShifts),
		JusticeLookbackMonths: atoi(model.SettingJusticeLookbackMonths),
		MinDaysBetweenShifts:  atoi(model.SettingMinDaysBetweenShifts),
		ShotefEnabled:         values[model.SettingShotefEnabled] == "true",
	}
	if raw := values[model.SettingShotefSettledAt]; raw != "" {
		if t, err := time.Parse(model.DateFormat, raw); err == nil {
			cfg.ShotefSettledAt = &t
		}
	}
	return cfg, nil
}

// SettingsService exposes the key/value configuration surface.
type SettingsService interface {
	// Resolved values for a scope; empty teamID returns the global view.
	Get(ctx context.Context, teamID string) (*dto.SettingsResponse, error)
	// Override keys in a scope.
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService instance.
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context, teamID string) (*dto.SettingsResponse, error) {
	values, err := resolveSettings(ctx, s.repo, teamID)
	if err != nil {
		s.logger.Error("resolve settings failed", zap.Error(err))
		return nil, err
	}
	return &dto.SettingsResponse{TeamID: teamID, Values: values}, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	for key, value := range req.Values {
		if _, ok := model.SettingsDefaults[key]; !ok {
			return nil, ErrUnknownSettingKey
		}
		if err := validateSettingValue(key, value); err != nil {
			return nil, err
		}
	}
	for key, value := range req.Values {
		row := &model.Setting{Key: key, Value: value}
		if req.TeamID != "" {
			id := req.TeamID
			row.TeamID = &id
		}
		if err := s.repo.Setting.Upsert(ctx, row); err != nil {
			s.logger.Error("upsert setting failed", zap.String("key", key), zap.Error(err))
			return nil, err
		}
	}
	return s.Get(ctx, req.TeamID)
}

func validateSettingValue(key, value string) error {
	switch key {
	case model.SettingMaxNormalShifts, model.SettingMaxThursdayShifts,
		model.SettingMaxWeekendShifts, model.SettingMinDaysBetweenShifts,
		model.SettingJusticeLookbackMonths:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return ErrInvalidSettingValue
		}
	case model.SettingShotefEnabled:
		if value != "true" && value != "false" {
			return ErrInvalidSettingValue
		}
	case model.SettingShotefSettledAt:
		if value != "" {
			if _, err := time.Parse(model.DateFormat, value); err != nil {
				return ErrInvalidSettingValue
			}
		}
	}
	return nil
}
