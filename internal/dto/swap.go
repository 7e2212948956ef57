package dto

// CreateSwapRequest records one member covering another's shift.
type CreateSwapRequest struct {
	ShiftID          string `json:"shift_id" binding:"required,uuid"`
	CoveringMemberID string `json:"covering_member_id" binding:"required,uuid"`
}

// SwapView is one active swap as rendered to clients.
type SwapView struct {
	SwapID         string      `json:"swap_id"`
	ShiftID        string      `json:"shift_id"`
	Date           string      `json:"date"`
	OriginalMember MemberBrief `json:"original_member"`
	CoveringMember MemberBrief `json:"covering_member"`
}

// BalanceView is one member's cover ledger. Balance is covers done minus
// covers received; positive means the team owes this member nights.
type BalanceView struct {
	MemberID       string `json:"member_id"`
	Name           string `json:"name"`
	CoversDone     int    `json:"covers_done"`
	CoversReceived int    `json:"covers_received"`
	Balance        int    `json:"balance"`
}
