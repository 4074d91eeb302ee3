package contracts

import (
	"context"
	"time"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
)

type CalendarUsecase interface {
	GetCalendar(ctx context.Context, therapistID string, request *requests.CalendarQuery) (*responses.Calendar, error)
}

// AvailabilityView is the read side of a therapist's availability store as the
// calendar projector consumes it.
type AvailabilityView interface {
	IsWorkingTime(date time.Time, at models.Clock) bool
	IsBlocked(date time.Time, at models.Clock) bool
	// BlockedWithin reports whether any blocked interval overlaps [start, end)
	// on the given date.
	BlockedWithin(date time.Time, start, end models.Clock) bool
	// WorkingSpan returns the contiguous declared window for the weekday.
	WorkingSpan(wd time.Weekday) (start, end models.Clock, enabled bool)
}

// AppointmentLookup is the read side of the appointment index.
type AppointmentLookup interface {
	FindAt(date time.Time, at models.Clock) *models.Appointment
	OnDay(date time.Time) []models.Appointment
	FindInRange(start, end time.Time) []models.Appointment
}
