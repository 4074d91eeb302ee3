package calendar

import (
	"fmt"
	"time"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
)

// ConflictReason names why a candidate booking was rejected.
type ConflictReason string

const (
	ConflictOutsideWorkingHours ConflictReason = "outside_working_hours"
	ConflictBlocked             ConflictReason = "blocked"
	ConflictDoubleBooked        ConflictReason = "double_booked"
)

// Conflict is returned by ValidateBooking when the requested window cannot be
// booked. Reasons are checked in a fixed order, so a window that is both
// outside working hours and double booked reports outside working hours.
type Conflict struct {
	Reason ConflictReason
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("booking conflict: %s", c.Reason)
}

// IntervalsOverlap reports whether the half-open minute intervals
// [aStart, aEnd) and [bStart, bEnd) share any instant. Touching endpoints do
// not overlap, so back-to-back sessions are always accepted.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidateBooking checks a candidate window against working hours, blocked
// intervals and existing appointments, in that order, and returns a *Conflict
// for the first failing check. It never mutates anything: callers commit the
// appointment separately after a nil result.
func (p *Projector) ValidateBooking(date time.Time, at models.Clock, durationMinutes int, store contracts.AvailabilityView, index contracts.AppointmentLookup) error {
	day := models.DateOf(date)
	reqStart := at.Minutes()
	reqEnd := reqStart + durationMinutes

	start, end, enabled := store.WorkingSpan(day.Weekday())
	if !enabled || reqStart < start.Minutes() || reqEnd > end.Minutes() {
		return &Conflict{Reason: ConflictOutsideWorkingHours}
	}

	if store.BlockedWithin(day, at, at.AddMinutes(durationMinutes)) {
		return &Conflict{Reason: ConflictBlocked}
	}

	for _, a := range index.OnDay(day) {
		if !a.Occupies() {
			continue
		}
		if IntervalsOverlap(reqStart, reqEnd, a.Start.Minutes(), a.Start.Minutes()+a.DurationMinutes) {
			return &Conflict{Reason: ConflictDoubleBooked}
		}
	}
	return nil
}
