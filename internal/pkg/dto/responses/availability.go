package responses

type WorkingHourRule struct {
	Weekday int    `json:"weekday"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type BlockedInterval struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Start           string `json:"start,omitempty"`
	End             string `json:"end,omitempty"`
	AllDay          bool   `json:"all_day"`
	RecurringWeekly bool   `json:"recurring_weekly"`
}

type Availability struct {
	TherapistID string            `json:"therapist_id"`
	Rules       []WorkingHourRule `json:"rules"`
	Blocked     []BlockedInterval `json:"blocked"`
}
