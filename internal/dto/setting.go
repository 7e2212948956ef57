package dto

// UpdateSettingsRequest overrides setting keys. Team-scoped when team_id is
// set, global otherwise. Unknown keys are rejected.
type UpdateSettingsRequest struct {
	TeamID string            `json:"team_id" binding:"omitempty,uuid"`
	Values map[string]string `json:"values" binding:"required,min=1"`
}

// SettingsResponse is the fully resolved key set for one scope.
type SettingsResponse struct {
	TeamID string            `json:"team_id,omitempty"`
	Values map[string]string `json:"values"`
}
