package model

import "time"

// Unavailability marks one member as unassignable on one date.
// At most one row per (member, date); re-creating updates the reason.
type Unavailability struct {
	UnavailabilityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unavailability_id"`
	MemberID         string    `gorm:"type:uuid;not null;index"                       json:"member_id"`
	Date             time.Time `gorm:"type:date;not null;index"                       json:"date"`
	Reason           string    `gorm:"type:varchar(255)"                              json:"reason,omitempty"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

// TableName sets the table name.
func (Unavailability) TableName() string { return "unavailabilities" }
