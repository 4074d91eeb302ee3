package requests

type CalendarQuery struct {
	View  string `json:"view" validate:"required,oneof=day week month"`
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}
