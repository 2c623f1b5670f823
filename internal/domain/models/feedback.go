package models

// Feedback statuses follow the legacy workflow.
const (
	FeedbackNew        = "Ny"
	FeedbackInProgress = "Under behandling"
	FeedbackResolved   = "Løst"
	FeedbackClosed     = "Lukket"

	// AlertActive is the status of a live admin alert; alerts share
	// the feedback table and are distinguished by IsAlert.
	AlertActive = "Aktiv"
)

// Feedback is a resident-submitted report, or an admin alert when
// IsAlert is set.
type Feedback struct {
	ID              int64  `json:"id"`
	Type            string `json:"type"`
	Datetime        string `json:"datetime"`
	Comment         string `json:"comment"`
	Submitter       string `json:"submitter"`
	Status          string `json:"status"`
	StatusChangedBy string `json:"status_changed_by,omitempty"`
	StatusChangedAt string `json:"status_changed_at,omitempty"`
	Hidden          bool   `json:"hidden"`

	// Alert-only columns.
	IsAlert          bool   `json:"is_alert,omitempty"`
	DisplayOnWeather bool   `json:"display_on_weather,omitempty"`
	ExpiryDate       string `json:"expiry_date,omitempty"`
	TargetGroup      string `json:"target_group,omitempty"`
}

// FeedbackStats aggregates counts for the admin dashboard.
type FeedbackStats struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
	Daily    []DailyCount   `json:"daily"`
}

// DailyCount is one day of feedback volume.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
