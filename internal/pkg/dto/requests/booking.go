package requests

type CreateBooking struct {
	TherapistID     string `json:"therapist_id" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Start           string `json:"start" validate:"required,clock"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0,lte=480"`
}

type ListAppointments struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	Page     int    `json:"page" validate:"min=1"`
	PageSize int    `json:"page_size" validate:"min=1,max=100"`
}
