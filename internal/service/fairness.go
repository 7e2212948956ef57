package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/tamirmana/Shifter/internal/model"
)

// ── shift categories ──

// ShiftCategory partitions nights by how much they cost the member.
type ShiftCategory string

const (
	CategoryNormal   ShiftCategory = "normal"   // Sunday-Wednesday
	CategoryThursday ShiftCategory = "thursday" // Thursday
	CategoryWeekend  ShiftCategory = "weekend"  // Friday and Saturday
)

// categoryOf classifies one calendar date.
func categoryOf(date time.Time) ShiftCategory {
	switch date.Weekday() {
	case time.Thursday:
		return CategoryThursday
	case time.Friday, time.Saturday:
		return CategoryWeekend
	default:
		return CategoryNormal
	}
}

// dateOnly truncates to midnight UTC so date rows compare by equality.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ── fairness ledger ──

// memberTally is one member's standing while a month is being generated.
type memberTally struct {
	member model.Member

	// effective counts over the lookback window, swap-adjusted and
	// credit-adjusted. The target month is excluded so regeneration is
	// idempotent.
	catCounts map[ShiftCategory]int
	total     int

	// raw counts inside the target month only. Caps and the monthly
	// tiebreaker read these.
	monthCat   map[ShiftCategory]int
	monthTotal int

	// every date the member is known to hold, for the min-gap rule.
	assigned map[time.Time]bool
}

// fairnessLedger accumulates assignments as the generator walks a month.
// It is seeded from stored history and updated in memory for every
// tentative pick, so later picks see earlier ones.
type fairnessLedger struct {
	tally map[string]*memberTally
	order []string
}

// newFairnessLedger seeds a ledger for one team.
//
// history carries shifts inside the lookback window but outside the target
// month; monthShifts carries rows of the target month that survive
// regeneration. swaps adjust attribution: a covered shift sits on the
// covering member's row, so the cover is subtracted from the coverer and
// added back to the original member. Swaps on shifts older than since are
// ignored, keeping the adjustment inside the same window as history.
// shift_credit is a flat offset applied to every category's effective count.
func newFairnessLedger(members []model.Member, history, monthShifts []model.Shift, swaps []model.ShiftSwap, since time.Time) *fairnessLedger {
	l := &fairnessLedger{tally: make(map[string]*memberTally, len(members))}
	for _, m := range members {
		l.tally[m.MemberID] = &memberTally{
			member: m,
			catCounts: map[ShiftCategory]int{
				CategoryNormal:   m.ShiftCredit,
				CategoryThursday: m.ShiftCredit,
				CategoryWeekend:  m.ShiftCredit,
			},
			monthCat: make(map[ShiftCategory]int),
			assigned: make(map[time.Time]bool),
			total:    m.ShiftCredit,
		}
		l.order = append(l.order, m.MemberID)
	}

	for _, sh := range history {
		t, ok := l.tally[sh.MemberID]
		if !ok {
			continue
		}
		cat := categoryOf(sh.ShiftDate)
		t.catCounts[cat]++
		t.total++
		t.assigned[dateOnly(sh.ShiftDate)] = true
	}
	for _, sw := range swaps {
		if sw.Shift == nil {
			continue
		}
		when := dateOnly(sw.Shift.ShiftDate)
		if when.Before(since) {
			continue
		}
		if t, ok := l.tally[sw.CoveringMemberID]; ok {
			t.total--
			t.catCounts[categoryOf(when)]--
		}
		if t, ok := l.tally[sw.OriginalMemberID]; ok {
			t.total++
			t.catCounts[categoryOf(when)]++
		}
	}
	for _, sh := range monthShifts {
		t, ok := l.tally[sh.MemberID]
		if !ok {
			continue
		}
		cat := categoryOf(sh.ShiftDate)
		t.monthCat[cat]++
		t.monthTotal++
		t.assigned[dateOnly(sh.ShiftDate)] = true
	}
	return l
}

// record applies one tentative assignment so following picks account for it.
// A weekend pair calls this once per night but chargeCap only on Friday.
func (l *fairnessLedger) record(memberID string, date time.Time, chargeCap bool) {
	t, ok := l.tally[memberID]
	if !ok {
		return
	}
	cat := categoryOf(date)
	t.total++
	t.catCounts[cat]++
	if chargeCap {
		t.monthCat[cat]++
	}
	t.monthTotal++
	t.assigned[dateOnly(date)] = true
}

// forget reverses record for manual deletions inside the target month.
func (l *fairnessLedger) forget(memberID string, date time.Time, chargedCap bool) {
	t, ok := l.tally[memberID]
	if !ok {
		return
	}
	cat := categoryOf(date)
	t.total--
	t.catCounts[cat]--
	if chargedCap {
		t.monthCat[cat]--
	}
	t.monthTotal--
	delete(t.assigned, dateOnly(date))
}

// withinGap reports whether the member holds any night closer than minGap
// days to date, in either direction.
func (l *fairnessLedger) withinGap(memberID string, date time.Time, minGap int) bool {
	t, ok := l.tally[memberID]
	if !ok || minGap <= 0 {
		return false
	}
	day := dateOnly(date)
	for off := -minGap; off <= minGap; off++ {
		if off == 0 {
			continue
		}
		if t.assigned[day.AddDate(0, 0, off)] {
			return true
		}
	}
	return false
}

// rank orders candidates for one night: Thursday and weekend nights rank on
// the effective count of their own category, normal nights on the effective
// total, then the effective total and the lightest month break ties. Final
// ties break randomly so equal members rotate across runs.
func (l *fairnessLedger) rank(candidates []model.Member, cat ShiftCategory, rng *rand.Rand) []model.Member {
	out := make([]model.Member, len(candidates))
	copy(out, candidates)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	sort.SliceStable(out, func(i, j int) bool {
		a, b := l.tally[out[i].MemberID], l.tally[out[j].MemberID]
		ak, bk := a.catCounts[cat], b.catCounts[cat]
		if cat == CategoryNormal {
			ak, bk = a.total, b.total
		}
		if ak != bk {
			return ak < bk
		}
		if a.total != b.total {
			return a.total < b.total
		}
		return a.monthTotal < b.monthTotal
	})
	return out
}
