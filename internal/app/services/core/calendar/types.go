package calendar

import (
	"time"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
)

// View selects the projection resolution.
type View string

const (
	ViewDay   View = constvars.CalendarViewDay
	ViewWeek  View = constvars.CalendarViewWeek
	ViewMonth View = constvars.CalendarViewMonth
)

func ParseView(s string) (View, bool) {
	switch s {
	case constvars.CalendarViewDay:
		return ViewDay, true
	case constvars.CalendarViewWeek:
		return ViewWeek, true
	case constvars.CalendarViewMonth:
		return ViewMonth, true
	}
	return "", false
}

// SlotState is the derived, ephemeral state of one (date, tick) cell. It is
// regenerated on every projection call and never persisted.
type SlotState string

const (
	SlotAvailable   SlotState = constvars.SlotStateAvailable
	SlotBooked      SlotState = constvars.SlotStateBooked
	SlotBlocked     SlotState = constvars.SlotStateBlocked
	SlotUnavailable SlotState = constvars.SlotStateUnavailable
)

// Range is a half-open [Start, End) day range.
type Range struct {
	Start time.Time
	End   time.Time
}

// Options configures the tick resolution and the wall-clock window that day
// and week views enumerate.
type Options struct {
	TickMinutes int
	WindowStart models.Clock
	WindowEnd   models.Clock
}

// DefaultOptions is the half-hour grid over the 08:00-18:00 window.
func DefaultOptions() Options {
	return Options{
		TickMinutes: 30,
		WindowStart: models.Clock{H: 8, M: 0},
		WindowEnd:   models.Clock{H: 18, M: 0},
	}
}

// Slot is one cell of the projected grid.
type Slot struct {
	At    models.Clock
	State SlotState
}

// Day is one day column. Month views carry only the aggregate State; day and
// week views carry per-tick Slots.
type Day struct {
	Date  time.Time
	State SlotState
	Slots []Slot
}

// Grid is the projection result handed to the rendering collaborator.
type Grid struct {
	View View
	Days []Day
}
