package dto

// ReassignShotefRequest moves an existing day duty to another member.
type ReassignShotefRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
}

// AddShotefDaysRequest manually places one member on several day duties.
type AddShotefDaysRequest struct {
	TeamID   string   `json:"team_id" binding:"required,uuid"`
	MemberID string   `json:"member_id" binding:"required,uuid"`
	Dates    []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}

// SettleShotefRequest closes the current accounting period for a team.
type SettleShotefRequest struct {
	TeamID string `json:"team_id" binding:"required,uuid"`
}

// SettleShotefResponse reports the stamp that opened the new period.
type SettleShotefResponse struct {
	TeamID    string `json:"team_id"`
	SettledAt string `json:"settled_at"`
}

// ShotefDayView is one day-duty assignment as rendered to clients.
type ShotefDayView struct {
	ShotefDayID string      `json:"shotef_day_id"`
	Date        string      `json:"date"`
	DayOfWeek   string      `json:"day_of_week"`
	Member      MemberBrief `json:"member"`
}

// ShotefCandidateView is one ranked replacement candidate for a day the
// rotation holder cannot serve.
type ShotefCandidateView struct {
	MemberID      string `json:"member_id"`
	Name          string `json:"name"`
	ShotefCount   int    `json:"shotef_count"`
	IsUnavailable bool   `json:"is_unavailable"`
}

// ShotefSubstitutionNeed describes one day duty left unassigned because the
// rotation holder is unavailable, with ranked candidates to pick from.
type ShotefSubstitutionNeed struct {
	Date       string                `json:"date"`
	DayOfWeek  string                `json:"day_of_week"`
	HolderID   string                `json:"holder_id"`
	HolderName string                `json:"holder_name"`
	Reason     string                `json:"reason"`
	Candidates []ShotefCandidateView `json:"candidates"`
}

// ShotefHistoryEntry is one member's standing in the current period.
type ShotefHistoryEntry struct {
	MemberID       string `json:"member_id"`
	Name           string `json:"name"`
	DaysServed     int    `json:"days_served"`
	ShotefCredit   int    `json:"shotef_credit"`
	EffectiveCount int    `json:"effective_count"`
}

// ShotefHistoryResponse is the per-period ledger for a team.
type ShotefHistoryResponse struct {
	TeamID    string               `json:"team_id"`
	SettledAt string               `json:"settled_at,omitempty"`
	Entries   []ShotefHistoryEntry `json:"entries"`
}
