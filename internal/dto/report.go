package dto

// FairnessEntry is one member's line in the fairness report.
type FairnessEntry struct {
	MemberID       string `json:"member_id"`
	Name           string `json:"name"`
	NormalCount    int    `json:"normal_count"`
	ThursdayCount  int    `json:"thursday_count"`
	WeekendCount   int    `json:"weekend_count"`
	TotalShifts    int    `json:"total_shifts"`
	CoversDone     int    `json:"covers_done"`
	CoversReceived int    `json:"covers_received"`
	ShiftCredit    int    `json:"shift_credit"`
	EffectiveTotal int    `json:"effective_total"`
}

// FairnessReportResponse is the team-wide fairness standing over the
// configured lookback window.
type FairnessReportResponse struct {
	TeamID        string          `json:"team_id"`
	LookbackStart string          `json:"lookback_start,omitempty"`
	Entries       []FairnessEntry `json:"entries"`
}
