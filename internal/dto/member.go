package dto

// CreateMemberRequest adds a member to a team.
type CreateMemberRequest struct {
	TeamID           string `json:"team_id" binding:"required,uuid"`
	Name             string `json:"name" binding:"required,max=100"`
	SleepsInBuilding bool   `json:"sleeps_in_building"`
	IsLeader         bool   `json:"is_leader"`
	PhotoURL         string `json:"photo_url" binding:"omitempty,max=255"`
}

// UpdateMemberRequest updates a member; nil fields are left untouched.
type UpdateMemberRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=100"`
	SleepsInBuilding *bool   `json:"sleeps_in_building"`
	IsLeader         *bool   `json:"is_leader"`
	PhotoURL         *string `json:"photo_url" binding:"omitempty,max=255"`
	ShiftCredit      *int    `json:"shift_credit"`
	ShotefCredit     *int    `json:"shotef_credit"`
}

// MemberBrief is the compact member shape embedded in schedule views.
type MemberBrief struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
}
