package model

import "time"

// Shift is one night-rotation assignment. Friday and Saturday of a weekend
// pair are two rows referencing the same member.
type Shift struct {
	ShiftID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	MemberID  string    `gorm:"type:uuid;not null;index"                       json:"member_id"`
	ShiftDate time.Time `gorm:"type:date;not null;index"                       json:"shift_date"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Member *Member     `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
	Swaps  []ShiftSwap `gorm:"foreignKey:ShiftID"                      json:"swaps,omitempty"`
}

// TableName sets the table name.
func (Shift) TableName() string { return "shifts" }

// ShiftSwap records an active hand-off: the covering member currently holds
// the shift, the original member is retained for balances and revert.
// The unique index on ShiftID enforces at most one active swap per shift.
type ShiftSwap struct {
	SwapID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_id"`
	ShiftID          string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"shift_id"`
	OriginalMemberID string    `gorm:"type:uuid;not null;index"                       json:"original_member_id"`
	CoveringMemberID string    `gorm:"type:uuid;not null;index"                       json:"covering_member_id"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Shift          *Shift  `gorm:"foreignKey:ShiftID;references:ShiftID"           json:"shift,omitempty"`
	OriginalMember *Member `gorm:"foreignKey:OriginalMemberID;references:MemberID" json:"original_member,omitempty"`
	CoveringMember *Member `gorm:"foreignKey:CoveringMemberID;references:MemberID" json:"covering_member,omitempty"`
}

// TableName sets the table name.
func (ShiftSwap) TableName() string { return "shift_swaps" }
