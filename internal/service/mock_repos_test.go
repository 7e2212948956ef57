package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/tamirmana/Shifter/internal/model"
	"github.com/tamirmana/Shifter/internal/repository"
)

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
	seq   int
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		m.seq++
		team.TeamID = fmt.Sprintf("team-%d", m.seq)
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) GetByName(_ context.Context, name string) (*model.Team, error) {
	for _, t := range m.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	delete(m.teams, id)
	return nil
}

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members map[string]*model.Member
	seq     int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if member.MemberID == "" {
		m.seq++
		member.MemberID = fmt.Sprintf("member-%d", m.seq)
	}
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	if mb, ok := m.members[id]; ok {
		return mb, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByTeamAndName(_ context.Context, teamID, name string) (*model.Member, error) {
	for _, mb := range m.members {
		if mb.TeamID == teamID && mb.Name == name {
			return mb, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) ListByTeam(_ context.Context, teamID string) ([]model.Member, error) {
	var result []model.Member
	for _, mb := range m.members {
		if mb.TeamID == teamID {
			result = append(result, *mb)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockMemberRepo) ListAll(_ context.Context) ([]model.Member, error) {
	var result []model.Member
	for _, mb := range m.members {
		result = append(result, *mb)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockMemberRepo) CountByTeam(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, mb := range m.members {
		counts[mb.TeamID]++
	}
	return counts, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

// ── Mock UnavailabilityRepository ──

type mockUnavailabilityRepo struct {
	rows map[string]*model.Unavailability
	seq  int
}

func newMockUnavailabilityRepo() *mockUnavailabilityRepo {
	return &mockUnavailabilityRepo{rows: make(map[string]*model.Unavailability)}
}

func (m *mockUnavailabilityRepo) Create(_ context.Context, u *model.Unavailability) error {
	if u.UnavailabilityID == "" {
		m.seq++
		u.UnavailabilityID = fmt.Sprintf("unavail-%d", m.seq)
	}
	m.rows[u.UnavailabilityID] = u
	return nil
}

func (m *mockUnavailabilityRepo) GetByID(_ context.Context, id string) (*model.Unavailability, error) {
	if u, ok := m.rows[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnavailabilityRepo) GetByMemberAndDate(_ context.Context, memberID string, date time.Time) (*model.Unavailability, error) {
	for _, u := range m.rows {
		if u.MemberID == memberID && dateOnly(u.Date).Equal(dateOnly(date)) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnavailabilityRepo) ListByMember(_ context.Context, memberID string) ([]model.Unavailability, error) {
	var result []model.Unavailability
	for _, u := range m.rows {
		if u.MemberID == memberID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockUnavailabilityRepo) ListByMembersInMonth(_ context.Context, memberIDs []string, year, month int) ([]model.Unavailability, error) {
	ids := stringSet(memberIDs)
	var result []model.Unavailability
	for _, u := range m.rows {
		if ids[u.MemberID] && u.Date.Year() == year && int(u.Date.Month()) == month {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUnavailabilityRepo) Update(_ context.Context, u *model.Unavailability) error {
	m.rows[u.UnavailabilityID] = u
	return nil
}

func (m *mockUnavailabilityRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts  map[string]*model.Shift
	seq     int
	members *mockMemberRepo
	swaps   *mockSwapRepo
}

func newMockShiftRepo(members *mockMemberRepo) *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift), members: members}
}

func (m *mockShiftRepo) Create(_ context.Context, s *model.Shift) error {
	if s.ShiftID == "" {
		m.seq++
		s.ShiftID = fmt.Sprintf("shift-%d", m.seq)
	}
	stored := *s
	stored.Member = nil
	stored.Swaps = nil
	m.shifts[stored.ShiftID] = &stored
	return nil
}

func (m *mockShiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	for i := range shifts {
		if err := m.Create(ctx, &shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

// hydrate attaches the Member and Swaps associations the gorm impl preloads.
func (m *mockShiftRepo) hydrate(sh model.Shift) model.Shift {
	if mb, ok := m.members.members[sh.MemberID]; ok {
		sh.Member = mb
	}
	if m.swaps != nil {
		for _, sw := range m.swaps.rows {
			if sw.ShiftID == sh.ShiftID {
				swap := *sw
				if orig, ok := m.members.members[sw.OriginalMemberID]; ok {
					swap.OriginalMember = orig
				}
				if cov, ok := m.members.members[sw.CoveringMemberID]; ok {
					swap.CoveringMember = cov
				}
				sh.Swaps = append(sh.Swaps, swap)
			}
		}
	}
	return sh
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	sh, ok := m.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	full := m.hydrate(*sh)
	return &full, nil
}

func (m *mockShiftRepo) GetByMemberAndDate(_ context.Context, memberID string, date time.Time) (*model.Shift, error) {
	for _, sh := range m.shifts {
		if sh.MemberID == memberID && dateOnly(sh.ShiftDate).Equal(dateOnly(date)) {
			full := m.hydrate(*sh)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByTeamAndDate(_ context.Context, teamID string, date time.Time) (*model.Shift, error) {
	for _, sh := range m.shifts {
		mb, ok := m.members.members[sh.MemberID]
		if ok && mb.TeamID == teamID && dateOnly(sh.ShiftDate).Equal(dateOnly(date)) {
			full := m.hydrate(*sh)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByMembers(_ context.Context, memberIDs []string) ([]model.Shift, error) {
	ids := stringSet(memberIDs)
	var result []model.Shift
	for _, sh := range m.shifts {
		if ids[sh.MemberID] {
			result = append(result, *sh)
		}
	}
	sortShifts(result)
	return result, nil
}

func (m *mockShiftRepo) ListByMembersInRange(_ context.Context, memberIDs []string, from, to time.Time) ([]model.Shift, error) {
	ids := stringSet(memberIDs)
	var result []model.Shift
	for _, sh := range m.shifts {
		d := dateOnly(sh.ShiftDate)
		if ids[sh.MemberID] && !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			result = append(result, *sh)
		}
	}
	sortShifts(result)
	return result, nil
}

func (m *mockShiftRepo) ListByTeamMonth(_ context.Context, teamID string, year, month int) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		mb, ok := m.members.members[sh.MemberID]
		if ok && mb.TeamID == teamID && sh.ShiftDate.Year() == year && int(sh.ShiftDate.Month()) == month {
			result = append(result, m.hydrate(*sh))
		}
	}
	sortShifts(result)
	return result, nil
}

func (m *mockShiftRepo) UpdateMember(_ context.Context, shiftID, memberID string) error {
	sh, ok := m.shifts[shiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sh.MemberID = memberID
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) DeleteByMembersInRange(_ context.Context, memberIDs []string, from, to time.Time) error {
	ids := stringSet(memberIDs)
	for id, sh := range m.shifts {
		d := dateOnly(sh.ShiftDate)
		if ids[sh.MemberID] && !d.Before(dateOnly(from)) && !d.After(dateOnly(to)) {
			delete(m.shifts, id)
		}
	}
	return nil
}

func sortShifts(shifts []model.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].ShiftDate.Equal(shifts[j].ShiftDate) {
			return shifts[i].ShiftDate.Before(shifts[j].ShiftDate)
		}
		return shifts[i].ShiftID < shifts[j].ShiftID
	})
}

// ── Mock ShiftSwapRepository ──

type mockSwapRepo struct {
	rows   map[string]*model.ShiftSwap
	seq    int
	shifts *mockShiftRepo
}

func newMockSwapRepo() *mockSwapRepo {
	return &mockSwapRepo{rows: make(map[string]*model.ShiftSwap)}
}

func (m *mockSwapRepo) Create(_ context.Context, swap *model.ShiftSwap) error {
	for _, sw := range m.rows {
		if sw.ShiftID == swap.ShiftID {
			return gorm.ErrDuplicatedKey
		}
	}
	if swap.SwapID == "" {
		m.seq++
		swap.SwapID = fmt.Sprintf("swap-%d", m.seq)
	}
	stored := *swap
	stored.Shift = nil
	m.rows[stored.SwapID] = &stored
	return nil
}

func (m *mockSwapRepo) hydrate(sw model.ShiftSwap) model.ShiftSwap {
	if m.shifts != nil {
		if sh, ok := m.shifts.shifts[sw.ShiftID]; ok {
			copySh := *sh
			sw.Shift = &copySh
		}
	}
	return sw
}

func (m *mockSwapRepo) GetByID(_ context.Context, id string) (*model.ShiftSwap, error) {
	sw, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	full := m.hydrate(*sw)
	return &full, nil
}

func (m *mockSwapRepo) GetByShift(_ context.Context, shiftID string) (*model.ShiftSwap, error) {
	for _, sw := range m.rows {
		if sw.ShiftID == shiftID {
			full := m.hydrate(*sw)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) ListByMembers(_ context.Context, memberIDs []string) ([]model.ShiftSwap, error) {
	ids := stringSet(memberIDs)
	var result []model.ShiftSwap
	for _, sw := range m.rows {
		if ids[sw.OriginalMemberID] || ids[sw.CoveringMemberID] {
			result = append(result, m.hydrate(*sw))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SwapID < result[j].SwapID })
	return result, nil
}

func (m *mockSwapRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

// ── Mock ShotefDayRepository ──

type mockShotefRepo struct {
	rows    map[string]*model.ShotefDay
	seq     int
	members *mockMemberRepo
}

func newMockShotefRepo(members *mockMemberRepo) *mockShotefRepo {
	return &mockShotefRepo{rows: make(map[string]*model.ShotefDay), members: members}
}

func (m *mockShotefRepo) Create(_ context.Context, d *model.ShotefDay) error {
	if d.ShotefDayID == "" {
		m.seq++
		d.ShotefDayID = fmt.Sprintf("shotef-%d", m.seq)
	}
	stored := *d
	stored.Member = nil
	m.rows[stored.ShotefDayID] = &stored
	return nil
}

func (m *mockShotefRepo) BatchCreate(ctx context.Context, days []model.ShotefDay) error {
	for i := range days {
		if err := m.Create(ctx, &days[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockShotefRepo) hydrate(d model.ShotefDay) model.ShotefDay {
	if mb, ok := m.members.members[d.MemberID]; ok {
		d.Member = mb
	}
	return d
}

func (m *mockShotefRepo) GetByID(_ context.Context, id string) (*model.ShotefDay, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	full := m.hydrate(*d)
	return &full, nil
}

func (m *mockShotefRepo) GetByTeamAndDate(_ context.Context, teamID string, date time.Time) (*model.ShotefDay, error) {
	for _, d := range m.rows {
		if d.TeamID == teamID && dateOnly(d.Date).Equal(dateOnly(date)) {
			full := m.hydrate(*d)
			return &full, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShotefRepo) ListByTeamMonth(_ context.Context, teamID string, year, month int) ([]model.ShotefDay, error) {
	var result []model.ShotefDay
	for _, d := range m.rows {
		if d.TeamID == teamID && d.Year == year && d.Month == month {
			result = append(result, m.hydrate(*d))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockShotefRepo) ListByMembers(_ context.Context, memberIDs []string) ([]model.ShotefDay, error) {
	ids := stringSet(memberIDs)
	var result []model.ShotefDay
	for _, d := range m.rows {
		if ids[d.MemberID] {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockShotefRepo) ListByMembersSince(_ context.Context, memberIDs []string, since time.Time) ([]model.ShotefDay, error) {
	ids := stringSet(memberIDs)
	var result []model.ShotefDay
	for _, d := range m.rows {
		if ids[d.MemberID] && !dateOnly(d.Date).Before(dateOnly(since)) {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockShotefRepo) UpdateMember(_ context.Context, dayID, memberID string) error {
	d, ok := m.rows[dayID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.MemberID = memberID
	return nil
}

func (m *mockShotefRepo) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *mockShotefRepo) DeleteByTeamMonth(_ context.Context, teamID string, year, month int, from time.Time) error {
	for id, d := range m.rows {
		if d.TeamID == teamID && d.Year == year && d.Month == month && !dateOnly(d.Date).Before(dateOnly(from)) {
			delete(m.rows, id)
		}
	}
	return nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	rows []*model.Setting
	seq  int
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{}
}

func (m *mockSettingRepo) ListGlobal(_ context.Context) ([]model.Setting, error) {
	var result []model.Setting
	for _, s := range m.rows {
		if s.TeamID == nil {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSettingRepo) ListByTeam(_ context.Context, teamID string) ([]model.Setting, error) {
	var result []model.Setting
	for _, s := range m.rows {
		if s.TeamID != nil && *s.TeamID == teamID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSettingRepo) Upsert(_ context.Context, setting *model.Setting) error {
	for _, s := range m.rows {
		sameScope := (s.TeamID == nil && setting.TeamID == nil) ||
			(s.TeamID != nil && setting.TeamID != nil && *s.TeamID == *setting.TeamID)
		if sameScope && s.Key == setting.Key {
			s.Value = setting.Value
			return nil
		}
	}
	m.seq++
	stored := *setting
	stored.SettingID = fmt.Sprintf("setting-%d", m.seq)
	m.rows = append(m.rows, &stored)
	return nil
}

// ── shared helpers ──

func stringSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// testRepos aggregates the mocks so tests can seed directly.
type testRepos struct {
	teams    *mockTeamRepo
	members  *mockMemberRepo
	unavail  *mockUnavailabilityRepo
	shifts   *mockShiftRepo
	swaps    *mockSwapRepo
	shotef   *mockShotefRepo
	settings *mockSettingRepo
}

func newTestRepos() *testRepos {
	members := newMockMemberRepo()
	shifts := newMockShiftRepo(members)
	swaps := newMockSwapRepo()
	shifts.swaps = swaps
	swaps.shifts = shifts
	return &testRepos{
		teams:    newMockTeamRepo(),
		members:  members,
		unavail:  newMockUnavailabilityRepo(),
		shifts:   shifts,
		swaps:    swaps,
		shotef:   newMockShotefRepo(members),
		settings: newMockSettingRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Team:           r.teams,
		Member:         r.members,
		Unavailability: r.unavail,
		Shift:          r.shifts,
		ShiftSwap:      r.swaps,
		ShotefDay:      r.shotef,
		Setting:        r.settings,
	}
}

// seeding helpers

func (r *testRepos) addTeam(name string) *model.Team {
	team := &model.Team{Name: name}
	_ = r.teams.Create(context.Background(), team)
	return team
}

func (r *testRepos) addMember(teamID, name string) *model.Member {
	member := &model.Member{TeamID: teamID, Name: name}
	_ = r.members.Create(context.Background(), member)
	return member
}

func (r *testRepos) addShift(memberID string, date time.Time) *model.Shift {
	sh := &model.Shift{MemberID: memberID, ShiftDate: dateOnly(date)}
	_ = r.shifts.Create(context.Background(), sh)
	return sh
}

func (r *testRepos) addUnavailability(memberID string, date time.Time) {
	_ = r.unavail.Create(context.Background(), &model.Unavailability{
		MemberID: memberID,
		Date:     dateOnly(date),
		Reason:   "vacation",
	})
}

func (r *testRepos) setTeamSetting(teamID, key, value string) {
	id := teamID
	_ = r.settings.Upsert(context.Background(), &model.Setting{TeamID: &id, Key: key, Value: value})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
