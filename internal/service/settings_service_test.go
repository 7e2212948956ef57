package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
)

func setupSettingsService(repos *testRepos) SettingsService {
	return NewSettingsService(repos.toRepository(), zap.NewNop())
}

func TestSettings_ResolutionOrder(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	svc := setupSettingsService(repos)

	// default
	resp, err := svc.Get(context.Background(), team.TeamID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.Values[model.SettingMaxNormalShifts] != "6" {
		t.Errorf("expected built-in default 6, got %s", resp.Values[model.SettingMaxNormalShifts])
	}

	// global override
	if _, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Values: map[string]string{model.SettingMaxNormalShifts: "4"},
	}); err != nil {
		t.Fatalf("global update failed: %v", err)
	}
	resp, _ = svc.Get(context.Background(), team.TeamID)
	if resp.Values[model.SettingMaxNormalShifts] != "4" {
		t.Errorf("expected global override 4, got %s", resp.Values[model.SettingMaxNormalShifts])
	}

	// team override wins over global
	if _, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		TeamID: team.TeamID,
		Values: map[string]string{model.SettingMaxNormalShifts: "2"},
	}); err != nil {
		t.Fatalf("team update failed: %v", err)
	}
	resp, _ = svc.Get(context.Background(), team.TeamID)
	if resp.Values[model.SettingMaxNormalShifts] != "2" {
		t.Errorf("expected team override 2, got %s", resp.Values[model.SettingMaxNormalShifts])
	}

	// the global view is untouched by the team override
	global, _ := svc.Get(context.Background(), "")
	if global.Values[model.SettingMaxNormalShifts] != "4" {
		t.Errorf("global view changed: %s", global.Values[model.SettingMaxNormalShifts])
	}
}

func TestSettings_UnknownKeyRejected(t *testing.T) {
	repos := newTestRepos()
	svc := setupSettingsService(repos)

	_, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Values: map[string]string{"max_coffee_breaks": "9"},
	})
	if !errors.Is(err, ErrUnknownSettingKey) {
		t.Fatalf("expected ErrUnknownSettingKey, got %v", err)
	}
}

func TestSettings_InvalidValueRejected(t *testing.T) {
	repos := newTestRepos()
	svc := setupSettingsService(repos)

	cases := map[string]string{
		model.SettingMaxNormalShifts: "-1",
		model.SettingShotefEnabled:   "maybe",
		model.SettingShotefSettledAt: "last week",
	}
	for key, value := range cases {
		_, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
			Values: map[string]string{key: value},
		})
		if !errors.Is(err, ErrInvalidSettingValue) {
			t.Errorf("key %s value %q: expected ErrInvalidSettingValue, got %v", key, value, err)
		}
	}
}

func TestLoadScheduleSettings_TypedValues(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	repos.setTeamSetting(team.TeamID, model.SettingMinDaysBetweenShifts, "3")
	repos.setTeamSetting(team.TeamID, model.SettingShotefEnabled, "false")
	repos.setTeamSetting(team.TeamID, model.SettingShotefSettledAt, "2024-06-01")

	cfg, err := loadScheduleSettings(context.Background(), repos.toRepository(), team.TeamID)
	if err != nil {
		t.Fatalf("loadScheduleSettings failed: %v", err)
	}
	if cfg.MinDaysBetweenShifts != 3 {
		t.Errorf("MinDaysBetweenShifts = %d, expected 3", cfg.MinDaysBetweenShifts)
	}
	if cfg.ShotefEnabled {
		t.Error("ShotefEnabled should be false")
	}
	if cfg.ShotefSettledAt == nil || cfg.ShotefSettledAt.Format(model.DateFormat) != "2024-06-01" {
		t.Errorf("ShotefSettledAt = %v, expected 2024-06-01", cfg.ShotefSettledAt)
	}
	if cfg.MaxNormalShifts != 6 || cfg.MaxThursdayShifts != 1 || cfg.MaxWeekendShifts != 1 {
		t.Errorf("cap defaults wrong: %+v", cfg)
	}
}
