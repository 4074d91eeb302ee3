package responses

import "time"

type Booking struct {
	ID              string    `json:"id"`
	TherapistID     string    `json:"therapist_id"`
	ClientID        string    `json:"client_id"`
	Date            string    `json:"date"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}
