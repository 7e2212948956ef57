package model

// Member is one person inside a team's rotations.
//
// ShiftCredit and ShotefCredit are signed offsets added to the member's
// effective counts; new members get ShiftCredit initialized to the team's
// current minimum so they never start ahead of or behind the pack.
type Member struct {
	MemberID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	TeamID           string `gorm:"type:uuid;not null;index"                       json:"team_id"`
	Name             string `gorm:"type:varchar(100);not null"                     json:"name"`
	SleepsInBuilding bool   `gorm:"not null;default:false"                         json:"sleeps_in_building"`
	IsLeader         bool   `gorm:"not null;default:false"                         json:"is_leader"`
	PhotoURL         string `gorm:"type:varchar(255)"                              json:"photo_url,omitempty"`
	ShiftCredit      int    `gorm:"not null;default:0"                             json:"shift_credit"`
	ShotefCredit     int    `gorm:"not null;default:0"                             json:"shotef_credit"`
	BaseModel

	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName sets the table name.
func (Member) TableName() string { return "members" }
