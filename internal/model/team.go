package model

// Team groups the members sharing one night rotation and one Shotef rotation.
type Team struct {
	TeamID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	PictureURL  string `gorm:"type:varchar(255)"                              json:"picture_url,omitempty"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	BaseModel

	Members []Member `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// TableName sets the table name.
func (Team) TableName() string { return "teams" }
