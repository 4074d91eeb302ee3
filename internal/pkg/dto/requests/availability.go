package requests

type WorkingHourRule struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start" validate:"required_if=Enabled true,omitempty,clock"`
	End     string `json:"end" validate:"required_if=Enabled true,omitempty,clock"`
}

type UpdateWorkingHours struct {
	Rules []WorkingHourRule `json:"rules" validate:"required,len=7,dive"`
}

type CreateBlockedInterval struct {
	Title           string `json:"title" validate:"max=120"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Start           string `json:"start" validate:"omitempty,clock"`
	End             string `json:"end" validate:"omitempty,clock"`
	AllDay          bool   `json:"all_day"`
	RecurringWeekly bool   `json:"recurring_weekly"`
}
