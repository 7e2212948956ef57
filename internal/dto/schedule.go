package dto

// MonthQuery addresses one team's month on read endpoints.
type MonthQuery struct {
	TeamID string `form:"team_id" binding:"required,uuid"`
	Year   int    `form:"year" binding:"required,min=2000,max=2200"`
	Month  int    `form:"month" binding:"required,min=1,max=12"`
}

// GenerateScheduleRequest regenerates one team's month.
type GenerateScheduleRequest struct {
	TeamID string `json:"team_id" binding:"required,uuid"`
	Year   int    `json:"year" binding:"required,min=2000,max=2200"`
	Month  int    `json:"month" binding:"required,min=1,max=12"`
}

// AssignShiftRequest manually places one member on one night.
type AssignShiftRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ReassignShiftRequest moves an existing shift to another member.
type ReassignShiftRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
}

// AddPastShiftsRequest backfills history for one member.
type AddPastShiftsRequest struct {
	MemberID string   `json:"member_id" binding:"required,uuid"`
	Dates    []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}

// ShiftView is one night assignment as rendered to clients.
type ShiftView struct {
	ShiftID   string       `json:"shift_id"`
	Date      string       `json:"date"`
	DayOfWeek string       `json:"day_of_week"`
	Category  string       `json:"category"`
	Member    MemberBrief  `json:"member"`
	CoveredBy *MemberBrief `json:"covered_by,omitempty"`
}

// UnavailableMemberView is one member who was out on an uncovered night.
type UnavailableMemberView struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// OptionalMemberView is one candidate offered for an uncovered night,
// annotated with the count used to rank it and why it was filtered out.
type OptionalMemberView struct {
	MemberID   string `json:"member_id"`
	Name       string `json:"name"`
	ShiftCount int    `json:"shift_count"`
	Reason     string `json:"reason"`
}

// SuggestionView describes one night the generator could not fill.
type SuggestionView struct {
	Date               string                  `json:"date"`
	DayOfWeek          string                  `json:"day_of_week"`
	UnavailableMembers []UnavailableMemberView `json:"unavailable_members"`
	OptionalMembers    []OptionalMemberView    `json:"optional_members"`
}

// GenerateScheduleResponse is the full outcome of a regeneration run.
type GenerateScheduleResponse struct {
	TeamID                  string                  `json:"team_id"`
	Year                    int                     `json:"year"`
	Month                   int                     `json:"month"`
	Assignments             []ShiftView             `json:"assignments"`
	Suggestions             []SuggestionView        `json:"suggestions"`
	ShotefAssignments       []ShotefDayView         `json:"shotef_assignments"`
	ShotefSubstitutionNeeds []ShotefSubstitutionNeed `json:"shotef_substitution_needs"`
}

// MonthSummary is one month that has stored assignments for a team.
type MonthSummary struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	ShiftCount  int `json:"shift_count"`
	ShotefCount int `json:"shotef_count"`
}

// MonthListResponse lists every month a team has assignments in.
type MonthListResponse struct {
	TeamID string         `json:"team_id"`
	Months []MonthSummary `json:"months"`
}

// MonthScheduleResponse is the stored month as rendered to clients.
type MonthScheduleResponse struct {
	TeamID string          `json:"team_id"`
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Shifts []ShiftView     `json:"shifts"`
	Shotef []ShotefDayView `json:"shotef"`
}
