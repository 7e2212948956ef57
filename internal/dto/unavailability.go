package dto

// CreateUnavailabilityRequest marks one member unavailable on one date.
// Repeating an existing (member, date) pair updates the reason in place.
type CreateUnavailabilityRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" binding:"omitempty,max=255"`
}

// BulkUnavailabilityRequest marks one member unavailable on several dates.
type BulkUnavailabilityRequest struct {
	MemberID string   `json:"member_id" binding:"required,uuid"`
	Dates    []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
	Reason   string   `json:"reason" binding:"omitempty,max=255"`
}
