package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
)

func setupShotefService(repos *testRepos, today time.Time) ShotefService {
	svc := NewShotefService(repos.toRepository(), zap.NewNop()).(*shotefService)
	svc.now = func() time.Time { return today }
	return svc
}

func TestShotefGenerate_HolderVacationBecomesSubstitutionNeed(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	only := repos.addMember(team.TeamID, "Alice")
	// the sole member is out on Tuesday June 4th
	repos.addUnavailability(only.MemberID, day(2024, time.June, 4))

	svc := setupScheduleService(repos, day(2024, time.May, 15))
	resp, err := svc.Generate(context.Background(), &dto.GenerateScheduleRequest{
		TeamID: team.TeamID, Year: 2024, Month: 6,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, v := range resp.ShotefAssignments {
		if v.Date == "2024-06-04" {
			t.Error("June 4th got a shotef row although the holder is out")
		}
	}
	var need *dto.ShotefSubstitutionNeed
	for i := range resp.ShotefSubstitutionNeeds {
		if resp.ShotefSubstitutionNeeds[i].Date == "2024-06-04" {
			need = &resp.ShotefSubstitutionNeeds[i]
			break
		}
	}
	if need == nil {
		t.Fatal("expected a substitution need for June 4th")
	}
	if need.HolderID != only.MemberID {
		t.Errorf("need names holder %s, expected %s", need.HolderName, only.Name)
	}
	if need.Reason != "vacation" {
		t.Errorf("need reason = %q, expected stored reason", need.Reason)
	}
	if len(need.Candidates) != 0 {
		t.Errorf("one-member team should have no candidates, got %d", len(need.Candidates))
	}
}

func TestShotefPick_TiedCountsRotateAcrossRuns(t *testing.T) {
	members := []model.Member{
		{MemberID: "member-1", Name: "Alice"},
		{MemberID: "member-2", Name: "Ben"},
	}
	counts := map[string]int{"member-1": 0, "member-2": 0}
	days := []time.Time{day(2024, time.June, 2)}

	picks := make(map[string]int)
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		picks[pickShotefHolder(members, counts, map[string]bool{}, newUnavailSet(nil), days, rng)]++
	}
	if len(picks) != 2 {
		t.Errorf("tied members should rotate across runs, picks = %v", picks)
	}
}

func TestShotefAddDays_RejectsWeekend(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	member := repos.addMember(team.TeamID, "Alice")
	svc := setupShotefService(repos, day(2024, time.June, 1))

	_, err := svc.AddDays(context.Background(), &dto.AddShotefDaysRequest{
		TeamID:   team.TeamID,
		MemberID: member.MemberID,
		Dates:    []string{"2024-06-07"}, // Friday
	})
	if !errors.Is(err, ErrShotefWeekendDate) {
		t.Fatalf("expected ErrShotefWeekendDate, got %v", err)
	}
}

func TestShotefAddDays_RejectsTeamDateConflict(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	ben := repos.addMember(team.TeamID, "Ben")
	svc := setupShotefService(repos, day(2024, time.June, 1))

	if _, err := svc.AddDays(context.Background(), &dto.AddShotefDaysRequest{
		TeamID: team.TeamID, MemberID: alice.MemberID, Dates: []string{"2024-06-03"},
	}); err != nil {
		t.Fatalf("first AddDays failed: %v", err)
	}
	_, err := svc.AddDays(context.Background(), &dto.AddShotefDaysRequest{
		TeamID: team.TeamID, MemberID: ben.MemberID, Dates: []string{"2024-06-03"},
	})
	if !errors.Is(err, ErrShotefDayTaken) {
		t.Fatalf("expected ErrShotefDayTaken, got %v", err)
	}
}

func TestShotefSettle_StampsDateAndZeroesCredits(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	alice.ShotefCredit = 4
	ben := repos.addMember(team.TeamID, "Ben")
	ben.ShotefCredit = -2

	svc := setupShotefService(repos, day(2024, time.June, 15))
	resp, err := svc.Settle(context.Background(), &dto.SettleShotefRequest{TeamID: team.TeamID})
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if resp.SettledAt != "2024-06-15" {
		t.Errorf("response settled_at = %q, expected 2024-06-15", resp.SettledAt)
	}

	rows, _ := repos.settings.ListByTeam(context.Background(), team.TeamID)
	var stamped string
	for _, row := range rows {
		if row.Key == model.SettingShotefSettledAt {
			stamped = row.Value
		}
	}
	if stamped != "2024-06-15" {
		t.Errorf("expected settled_at 2024-06-15, got %q", stamped)
	}
	for _, m := range []*model.Member{alice, ben} {
		stored, _ := repos.members.GetByID(context.Background(), m.MemberID)
		if stored.ShotefCredit != 0 {
			t.Errorf("%s still has shotef credit %d after settle", stored.Name, stored.ShotefCredit)
		}
	}
}

func TestShotefHistory_CountsSinceSettlement(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	ben := repos.addMember(team.TeamID, "Ben")
	repos.setTeamSetting(team.TeamID, model.SettingShotefSettledAt, "2024-06-01")

	addDay := func(memberID string, d time.Time) {
		_ = repos.shotef.Create(context.Background(), &model.ShotefDay{
			TeamID: team.TeamID, MemberID: memberID,
			Date: d, Year: d.Year(), Month: int(d.Month()),
		})
	}
	addDay(alice.MemberID, day(2024, time.May, 20)) // before settlement, ignored
	addDay(alice.MemberID, day(2024, time.June, 3))
	addDay(ben.MemberID, day(2024, time.June, 4))
	addDay(ben.MemberID, day(2024, time.June, 5))

	svc := setupShotefService(repos, day(2024, time.June, 15))
	resp, err := svc.History(context.Background(), team.TeamID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if resp.SettledAt != "2024-06-01" {
		t.Errorf("expected settled_at 2024-06-01, got %q", resp.SettledAt)
	}
	byName := make(map[string]dto.ShotefHistoryEntry)
	for _, e := range resp.Entries {
		byName[e.Name] = e
	}
	if got := byName["Alice"].DaysServed; got != 1 {
		t.Errorf("Alice served %d days, expected 1", got)
	}
	if got := byName["Ben"].DaysServed; got != 2 {
		t.Errorf("Ben served %d days, expected 2", got)
	}
	// sorted by effective count ascending
	if resp.Entries[0].Name != "Alice" {
		t.Errorf("expected Alice first, got %s", resp.Entries[0].Name)
	}
}

func TestShotefReassign_MovesDay(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	ben := repos.addMember(team.TeamID, "Ben")
	d := day(2024, time.June, 3)
	row := &model.ShotefDay{TeamID: team.TeamID, MemberID: alice.MemberID, Date: d, Year: 2024, Month: 6}
	_ = repos.shotef.Create(context.Background(), row)

	svc := setupShotefService(repos, day(2024, time.June, 1))
	view, err := svc.Reassign(context.Background(), row.ShotefDayID, &dto.ReassignShotefRequest{
		MemberID: ben.MemberID,
	})
	if err != nil {
		t.Fatalf("Reassign failed: %v", err)
	}
	if view.Member.MemberID != ben.MemberID {
		t.Errorf("expected Ben to hold the day, got %s", view.Member.Name)
	}
	stored, _ := repos.shotef.GetByID(context.Background(), row.ShotefDayID)
	if stored.MemberID != ben.MemberID {
		t.Error("stored day still points at the old member")
	}
}
