package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tamirmana/Shifter/internal/dto"
	"github.com/tamirmana/Shifter/internal/model"
)

// unavailSet answers "is member m out on date d" in O(1), keeping the
// stored reason for suggestion and substitution payloads.
type unavailSet map[string]map[time.Time]string

func newUnavailSet(rows []model.Unavailability) unavailSet {
	s := make(unavailSet)
	for _, u := range rows {
		if s[u.MemberID] == nil {
			s[u.MemberID] = make(map[time.Time]string)
		}
		reason := u.Reason
		if reason == "" {
			reason = "Marked unavailable"
		}
		s[u.MemberID][dateOnly(u.Date)] = reason
	}
	return s
}

func (s unavailSet) out(memberID string, date time.Time) bool {
	_, ok := s[memberID][dateOnly(date)]
	return ok
}

func (s unavailSet) reason(memberID string, date time.Time) string {
	return s[memberID][dateOnly(date)]
}

// capFor returns the per-month cap of one category.
func capFor(cat ShiftCategory, cfg *ScheduleSettings) int {
	switch cat {
	case CategoryThursday:
		return cfg.MaxThursdayShifts
	case CategoryWeekend:
		return cfg.MaxWeekendShifts
	default:
		return cfg.MaxNormalShifts
	}
}

// eligible reports whether a member may take every date in dates as one
// assignment unit. A weekend pair passes both nights so a Saturday
// vacation disqualifies the Friday pick too. Leaders never rotate.
func eligible(l *fairnessLedger, m model.Member, dates []time.Time, cat ShiftCategory, cfg *ScheduleSettings, out unavailSet) bool {
	if m.IsLeader {
		return false
	}
	t, ok := l.tally[m.MemberID]
	if !ok {
		return false
	}
	if t.monthCat[cat] >= capFor(cat, cfg) {
		return false
	}
	for _, d := range dates {
		if out.out(m.MemberID, d) {
			return false
		}
		if l.withinGap(m.MemberID, d, cfg.MinDaysBetweenShifts) {
			return false
		}
	}
	return true
}

// ineligibleReason names every constraint that filtered a non-out member,
// joined with "; " when more than one binds.
func ineligibleReason(l *fairnessLedger, m model.Member, date time.Time, cat ShiftCategory, cfg *ScheduleSettings) string {
	t := l.tally[m.MemberID]
	var reasons []string
	if t != nil && l.withinGap(m.MemberID, date, cfg.MinDaysBetweenShifts) {
		reasons = append(reasons, fmt.Sprintf("Min gap not met (%d days)", cfg.MinDaysBetweenShifts))
	}
	if t != nil && t.monthCat[cat] >= capFor(cat, cfg) {
		switch cat {
		case CategoryThursday:
			reasons = append(reasons, fmt.Sprintf("Reached max Thursday shifts (%d)", cfg.MaxThursdayShifts))
		case CategoryWeekend:
			reasons = append(reasons, fmt.Sprintf("Reached max weekend shifts (%d)", cfg.MaxWeekendShifts))
		default:
			reasons = append(reasons, fmt.Sprintf("Reached max normal shifts (%d)", cfg.MaxNormalShifts))
		}
	}
	if len(reasons) == 0 {
		return "Unknown constraint"
	}
	return strings.Join(reasons, "; ")
}

// buildSuggestion describes one night nobody could take. The optional list
// holds every rotating member, annotated with why they were skipped and
// ranked lightest load first, so a manual override can pick the least
// unfair draft; members out that day appear in both lists.
func buildSuggestion(l *fairnessLedger, members []model.Member, date time.Time, cat ShiftCategory, cfg *ScheduleSettings, out unavailSet) dto.SuggestionView {
	sv := dto.SuggestionView{
		Date:               date.Format(model.DateFormat),
		DayOfWeek:          date.Weekday().String(),
		UnavailableMembers: []dto.UnavailableMemberView{},
		OptionalMembers:    []dto.OptionalMemberView{},
	}
	for _, m := range members {
		if m.IsLeader {
			continue
		}
		var reason string
		if out.out(m.MemberID, date) {
			reason = out.reason(m.MemberID, date)
			sv.UnavailableMembers = append(sv.UnavailableMembers, dto.UnavailableMemberView{
				MemberID: m.MemberID,
				Name:     m.Name,
				Reason:   reason,
			})
		} else {
			reason = ineligibleReason(l, m, date, cat, cfg)
		}
		sv.OptionalMembers = append(sv.OptionalMembers, dto.OptionalMemberView{
			MemberID:   m.MemberID,
			Name:       m.Name,
			ShiftCount: l.tally[m.MemberID].total,
			Reason:     reason,
		})
	}
	sort.SliceStable(sv.OptionalMembers, func(i, j int) bool {
		return sv.OptionalMembers[i].ShiftCount < sv.OptionalMembers[j].ShiftCount
	})
	return sv
}
