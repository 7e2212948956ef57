package model

import "time"

// ShotefDay is one day-duty assignment in the Sunday-Thursday rotation.
// Weekends never have a row. Year and month are denormalized for the
// per-month queries the generator and views run constantly.
type ShotefDay struct {
	ShotefDayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shotef_day_id"`
	TeamID      string    `gorm:"type:uuid;not null;index"                       json:"team_id"`
	MemberID    string    `gorm:"type:uuid;not null;index"                       json:"member_id"`
	Date        time.Time `gorm:"type:date;not null"                             json:"date"`
	Year        int       `gorm:"not null"                                       json:"year"`
	Month       int       `gorm:"not null"                                       json:"month"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

// TableName sets the table name.
func (ShotefDay) TableName() string { return "shotef_days" }
