package models

import (
	"time"

	"soulful-sync-service/internal/pkg/constvars"
)

// Appointment is owned by the booking flow; the calendar core only reads it.
type Appointment struct {
	ID              string    `json:"id" bson:"_id"`
	TherapistID     string    `json:"therapist_id" bson:"therapist_id"`
	ClientID        string    `json:"client_id" bson:"client_id"`
	Date            time.Time `json:"date" bson:"date"`
	Start           Clock     `json:"start" bson:"start"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	Status          string    `json:"status" bson:"status"`
	TimeModel       `bson:",inline"`
}

// Occupies reports whether the appointment takes up calendar space. Cancelled
// appointments are equivalent to absence for every core operation.
func (a Appointment) Occupies() bool {
	return a.Status == constvars.AppointmentStatusPending || a.Status == constvars.AppointmentStatusConfirmed
}

// EndClock is the wall time the appointment finishes.
func (a Appointment) EndClock() Clock {
	return a.Start.AddMinutes(a.DurationMinutes)
}
