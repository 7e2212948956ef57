package model

// Setting is one key/value pair; TeamID nil means global default override.
// Resolution order: built-in defaults < global rows < team rows.
type Setting struct {
	SettingID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"setting_id"`
	TeamID    *string `gorm:"type:uuid;index"                                json:"team_id,omitempty"`
	Key       string  `gorm:"type:varchar(100);not null"                     json:"key"`
	Value     string  `gorm:"type:varchar(255);not null"                     json:"value"`
}

// TableName sets the table name.
func (Setting) TableName() string { return "settings" }

// Setting keys understood by the engine.
const (
	SettingMaxNormalShifts       = "max_normal_shifts"
	SettingMaxThursdayShifts     = "max_thursday_shifts"
	SettingMaxWeekendShifts      = "max_weekend_shifts"
	SettingJusticeLookbackMonths = "justice_lookback_months"
	SettingMinDaysBetweenShifts  = "min_days_between_shifts"
	SettingShotefEnabled         = "shotef_enabled"
	SettingShotefSettledAt       = "shotef_settled_at"
)

// SettingsDefaults are the built-in values used when no row overrides them.
var SettingsDefaults = map[string]string{
	SettingMaxNormalShifts:       "6",
	SettingMaxThursdayShifts:     "1",
	SettingMaxWeekendShifts:      "1",
	SettingJusticeLookbackMonths: "0",
	SettingMinDaysBetweenShifts:  "1",
	SettingShotefEnabled:         "true",
	SettingShotefSettledAt:       "",
}
