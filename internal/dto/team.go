package dto

// CreateTeamRequest creates a team.
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	PictureURL  string `json:"picture_url" binding:"omitempty,max=255"`
	Description string `json:"description"`
}

// UpdateTeamRequest updates a team; nil fields are left untouched.
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	PictureURL  *string `json:"picture_url" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}
