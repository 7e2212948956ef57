package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
)

func setupMemberService(repos *testRepos) MemberService {
	svc := NewMemberService(repos.toRepository(), zap.NewNop()).(*memberService)
	svc.now = func() time.Time { return day(2024, time.June, 15) }
	return svc
}

func TestMemberCreate_JoinCreditMatchesTeamMinimum(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	ben := repos.addMember(team.TeamID, "Ben")

	// Alice served 4 nights, Ben 2; the newcomer enters level with Ben.
	for d := 1; d <= 4; d++ {
		repos.addShift(alice.MemberID, day(2024, time.May, d))
	}
	repos.addShift(ben.MemberID, day(2024, time.May, 10))
	repos.addShift(ben.MemberID, day(2024, time.May, 20))

	svc := setupMemberService(repos)
	member, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Carmel",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if member.ShiftCredit != 2 {
		t.Errorf("ShiftCredit = %d, expected 2", member.ShiftCredit)
	}
}

func TestMemberCreate_LeaderCountsExcludedFromJoinCredit(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	leader := repos.addMember(team.TeamID, "Lior")
	leader.IsLeader = true
	alice := repos.addMember(team.TeamID, "Alice")

	repos.addShift(alice.MemberID, day(2024, time.May, 3))
	repos.addShift(alice.MemberID, day(2024, time.May, 12))

	svc := setupMemberService(repos)
	member, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Ben",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// The leader's zero count must not drag the minimum down.
	if member.ShiftCredit != 2 {
		t.Errorf("ShiftCredit = %d, expected 2", member.ShiftCredit)
	}
}

func TestMemberCreate_NegativeMinimumCarries(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	alice.ShiftCredit = -3
	ben := repos.addMember(team.TeamID, "Ben")
	repos.addShift(ben.MemberID, day(2024, time.May, 6))

	svc := setupMemberService(repos)
	member, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Carmel",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// a member in debt sets the floor; clamping at zero would put the
	// newcomer ahead of them
	if member.ShiftCredit != -3 {
		t.Errorf("ShiftCredit = %d, expected -3", member.ShiftCredit)
	}
}

func TestMemberCreate_JoinCreditHonorsLookbackWindow(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")
	ben := repos.addMember(team.TeamID, "Ben")
	repos.setTeamSetting(team.TeamID, model.SettingJusticeLookbackMonths, "1")

	// Alice's nights predate the window; only Ben's June night counts.
	repos.addShift(alice.MemberID, day(2024, time.March, 4))
	repos.addShift(alice.MemberID, day(2024, time.March, 11))
	repos.addShift(ben.MemberID, day(2024, time.June, 3))

	svc := setupMemberService(repos)
	member, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Carmel",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if member.ShiftCredit != 0 {
		t.Errorf("ShiftCredit = %d, expected 0 with old nights outside the window", member.ShiftCredit)
	}
}

func TestMemberCreate_FirstMemberStartsAtZero(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")

	svc := setupMemberService(repos)
	member, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Alice",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if member.ShiftCredit != 0 {
		t.Errorf("ShiftCredit = %d, expected 0", member.ShiftCredit)
	}
}

func TestMemberCreate_DuplicateNameRejected(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	repos.addMember(team.TeamID, "Alice")

	svc := setupMemberService(repos)
	_, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: team.TeamID,
		Name:   "Alice",
	})
	if !errors.Is(err, ErrMemberNameTaken) {
		t.Fatalf("expected ErrMemberNameTaken, got %v", err)
	}

	// Same name is fine on another team.
	other := repos.addTeam("Lookout")
	if _, err := svc.Create(context.Background(), &dto.CreateMemberRequest{
		TeamID: other.TeamID,
		Name:   "Alice",
	}); err != nil {
		t.Fatalf("cross-team create failed: %v", err)
	}
}

func TestMemberUpdate_AppliesPointerFields(t *testing.T) {
	repos := newTestRepos()
	team := repos.addTeam("Watchtower")
	alice := repos.addMember(team.TeamID, "Alice")

	svc := setupMemberService(repos)
	name := "Alexandra"
	leader := true
	credit := 3
	member, err := svc.Update(context.Background(), alice.MemberID, &dto.UpdateMemberRequest{
		Name:         &name,
		IsLeader:     &leader,
		ShotefCredit: &credit,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if member.Name != "Alexandra" || !member.IsLeader || member.ShotefCredit != 3 {
		t.Errorf("update not applied: %+v", member)
	}
}

func TestMemberGet_UnknownID(t *testing.T) {
	repos := newTestRepos()
	svc := setupMemberService(repos)
	if _, err := svc.Get(context.Background(), "member-404"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
