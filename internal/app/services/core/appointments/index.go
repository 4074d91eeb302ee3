package appointments

import (
	"sort"
	"time"

	"soulful-sync-service/internal/app/models"
)

// Index is a fast in-process lookup of booked appointments keyed by slot
// start. It performs no overlap reasoning itself: overlap checks against
// durations belong to the calendar projector.
type Index struct {
	byID map[string]models.Appointment
}

func NewIndex() *Index {
	return &Index{byID: make(map[string]models.Appointment)}
}

// NewIndexFrom builds an index from a repository result set.
func NewIndexFrom(appts []models.Appointment) *Index {
	idx := NewIndex()
	for _, a := range appts {
		idx.Upsert(a)
	}
	return idx
}

// Upsert stores the appointment, replacing any existing entry with the same ID.
func (idx *Index) Upsert(a models.Appointment) {
	a.Date = models.DateOf(a.Date)
	idx.byID[a.ID] = a
}

// Remove deletes by ID. Removing an absent ID is a no-op.
func (idx *Index) Remove(id string) {
	delete(idx.byID, id)
}

// FindAt returns the appointment starting exactly at (date, at), or nil.
// Several appointments can share a start after a cancel-and-rebook; an
// occupying one wins so a cancelled tombstone never shadows the live booking.
func (idx *Index) FindAt(date time.Time, at models.Clock) *models.Appointment {
	day := models.DateOf(date)
	var found *models.Appointment
	for _, a := range idx.byID {
		if !a.Date.Equal(day) || a.Start != at {
			continue
		}
		match := a
		if match.Occupies() {
			return &match
		}
		if found == nil {
			found = &match
		}
	}
	return found
}

// FindInRange returns appointments whose start instant falls in [start, end),
// ordered ascending by (date, time).
func (idx *Index) FindInRange(start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, a := range idx.byID {
		at := a.Date.Add(time.Duration(a.Start.Minutes()) * time.Minute)
		if !at.Before(start) && at.Before(end) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Start.Minutes() < out[j].Start.Minutes()
	})
	return out
}

// OnDay returns appointments for a single calendar day, ascending by start.
func (idx *Index) OnDay(date time.Time) []models.Appointment {
	day := models.DateOf(date)
	return idx.FindInRange(day, day.AddDate(0, 0, 1))
}
