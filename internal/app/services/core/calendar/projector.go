package calendar

import (
	"time"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
)

// Projector derives slot-level calendar grids from an availability view and
// an appointment lookup. Grids are throwaway read models: nothing here is
// persisted, so projecting twice over unchanged inputs yields equal grids.
type Projector struct {
	opts Options
}

func NewProjector(opts Options) *Projector {
	if opts.TickMinutes <= 0 {
		opts.TickMinutes = DefaultOptions().TickMinutes
	}
	if !opts.WindowStart.Before(opts.WindowEnd) {
		def := DefaultOptions()
		opts.WindowStart = def.WindowStart
		opts.WindowEnd = def.WindowEnd
	}
	return &Projector{opts: opts}
}

// Project renders the grid for the half-open day range. Day and week views
// carry one Slot per tick in the configured window; month views carry only a
// per-day aggregate state.
func (p *Projector) Project(rng Range, view View, store contracts.AvailabilityView, index contracts.AppointmentLookup) Grid {
	grid := Grid{View: view}
	start := models.DateOf(rng.Start)
	end := models.DateOf(rng.End)

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if view == ViewMonth {
			grid.Days = append(grid.Days, p.aggregateDay(day, store, index))
			continue
		}
		grid.Days = append(grid.Days, p.projectDay(day, store, index))
	}
	return grid
}

func (p *Projector) projectDay(day time.Time, store contracts.AvailabilityView, index contracts.AppointmentLookup) Day {
	out := Day{Date: day}
	for _, tick := range p.ticks() {
		out.Slots = append(out.Slots, Slot{At: tick, State: p.slotState(day, tick, store, index)})
	}
	out.State = summarize(out.Slots)
	return out
}

// slotState resolves one cell. Precedence is booked over blocked over
// available: an appointment standing on a later-blocked tick stays visible
// as booked.
func (p *Projector) slotState(day time.Time, tick models.Clock, store contracts.AvailabilityView, index contracts.AppointmentLookup) SlotState {
	if a := index.FindAt(day, tick); a != nil && a.Occupies() {
		return SlotBooked
	}
	if store.IsBlocked(day, tick) {
		return SlotBlocked
	}
	if store.IsWorkingTime(day, tick) {
		return SlotAvailable
	}
	return SlotUnavailable
}

// aggregateDay folds a whole day into one state for month views. Any occupying
// appointment marks the day booked; otherwise any open working tick marks it
// available.
func (p *Projector) aggregateDay(day time.Time, store contracts.AvailabilityView, index contracts.AppointmentLookup) Day {
	for _, a := range index.OnDay(day) {
		if a.Occupies() {
			return Day{Date: day, State: SlotBooked}
		}
	}
	for _, tick := range p.ticks() {
		if store.IsWorkingTime(day, tick) && !store.IsBlocked(day, tick) {
			return Day{Date: day, State: SlotAvailable}
		}
	}
	return Day{Date: day, State: SlotUnavailable}
}

func (p *Projector) ticks() []models.Clock {
	var out []models.Clock
	for t := p.opts.WindowStart; t.Before(p.opts.WindowEnd); t = t.AddMinutes(p.opts.TickMinutes) {
		out = append(out, t)
	}
	return out
}

// summarize gives day and week columns the same headline state month views
// compute, derived from the already-resolved slots.
func summarize(slots []Slot) SlotState {
	state := SlotUnavailable
	for _, s := range slots {
		switch s.State {
		case SlotBooked:
			return SlotBooked
		case SlotAvailable:
			state = SlotAvailable
		}
	}
	return state
}
