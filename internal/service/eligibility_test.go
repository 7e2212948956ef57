package service

import (
	"testing"
	"time"

	"github.com/tamirmana/Shifter/internal/model"
)

func TestIneligibleReason_NamesBindingConstraints(t *testing.T) {
	cfg := &ScheduleSettings{
		MaxNormalShifts:      2,
		MaxThursdayShifts:    1,
		MaxWeekendShifts:     1,
		MinDaysBetweenShifts: 2,
	}
	capped := model.Member{MemberID: "member-1", Name: "Alice"}
	recent := model.Member{MemberID: "member-2", Name: "Ben"}
	fresh := model.Member{MemberID: "member-3", Name: "Carmel"}
	both := model.Member{MemberID: "member-4", Name: "Dana"}

	monthShifts := []model.Shift{
		// Alice already holds two normal nights this month, far from the target.
		{ShiftID: "shift-1", MemberID: "member-1", ShiftDate: day(2024, time.June, 2)},
		{ShiftID: "shift-2", MemberID: "member-1", ShiftDate: day(2024, time.June, 9)},
		// Ben held last night.
		{ShiftID: "shift-3", MemberID: "member-2", ShiftDate: day(2024, time.June, 16)},
		// Dana is both capped and too close.
		{ShiftID: "shift-4", MemberID: "member-4", ShiftDate: day(2024, time.June, 10)},
		{ShiftID: "shift-5", MemberID: "member-4", ShiftDate: day(2024, time.June, 12)},
		{ShiftID: "shift-6", MemberID: "member-4", ShiftDate: day(2024, time.June, 16)},
	}
	l := newFairnessLedger([]model.Member{capped, recent, fresh, both}, nil, monthShifts, nil, time.Time{})

	target := day(2024, time.June, 17) // Monday
	if got := ineligibleReason(l, capped, target, CategoryNormal, cfg); got != "Reached max normal shifts (2)" {
		t.Errorf("capped member reason = %q", got)
	}
	if got := ineligibleReason(l, recent, target, CategoryNormal, cfg); got != "Min gap not met (2 days)" {
		t.Errorf("recent member reason = %q", got)
	}
	if got := ineligibleReason(l, fresh, target, CategoryNormal, cfg); got != "Unknown constraint" {
		t.Errorf("fresh member reason = %q", got)
	}
	want := "Min gap not met (2 days); Reached max normal shifts (2)"
	if got := ineligibleReason(l, both, target, CategoryNormal, cfg); got != want {
		t.Errorf("doubly blocked member reason = %q, expected %q", got, want)
	}
}

func TestBuildSuggestion_RanksEveryRotatingMember(t *testing.T) {
	cfg := &ScheduleSettings{MaxNormalShifts: 1, MaxThursdayShifts: 1, MaxWeekendShifts: 1}
	members := []model.Member{
		{MemberID: "member-0", Name: "Lead", IsLeader: true},
		{MemberID: "member-1", Name: "Alice"},
		{MemberID: "member-2", Name: "Ben"},
		{MemberID: "member-3", Name: "Carmel"},
	}
	history := []model.Shift{
		{ShiftID: "shift-1", MemberID: "member-2", ShiftDate: day(2024, time.May, 6)},
		{ShiftID: "shift-2", MemberID: "member-2", ShiftDate: day(2024, time.May, 13)},
		{ShiftID: "shift-3", MemberID: "member-3", ShiftDate: day(2024, time.May, 7)},
	}
	l := newFairnessLedger(members, history, nil, nil, time.Time{})

	target := day(2024, time.June, 3)
	out := newUnavailSet([]model.Unavailability{
		{MemberID: "member-1", Date: target, Reason: "reserve duty"},
	})

	sv := buildSuggestion(l, members, target, CategoryNormal, cfg, out)

	if sv.Date != "2024-06-03" || sv.DayOfWeek != "Monday" {
		t.Fatalf("suggestion header = %s %s", sv.Date, sv.DayOfWeek)
	}
	if len(sv.UnavailableMembers) != 1 {
		t.Fatalf("unavailable count = %d, expected 1", len(sv.UnavailableMembers))
	}
	if sv.UnavailableMembers[0].MemberID != "member-1" || sv.UnavailableMembers[0].Reason != "reserve duty" {
		t.Errorf("unavailable entry = %+v", sv.UnavailableMembers[0])
	}
	// every rotating member appears in the optional list, even the one out
	if len(sv.OptionalMembers) != 3 {
		t.Fatalf("optional count = %d, expected 3 (leader excluded)", len(sv.OptionalMembers))
	}
	// lightest load first: Alice none, Carmel one past night, Ben two
	wantOrder := []string{"member-1", "member-3", "member-2"}
	for i, id := range wantOrder {
		if sv.OptionalMembers[i].MemberID != id {
			t.Errorf("optional[%d] = %s, expected %s", i, sv.OptionalMembers[i].MemberID, id)
		}
	}
	if sv.OptionalMembers[0].Reason != "reserve duty" {
		t.Errorf("out member's optional reason = %q, expected the stored reason", sv.OptionalMembers[0].Reason)
	}
}
