package availability

import (
	"fmt"
	"time"

	"soulful-sync-service/internal/app/models"

	"github.com/google/uuid"
)

// ValidationError reports a malformed working-hour rule or blocked interval.
// It is always caller-recoverable: the write is rejected and prior state is
// kept unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Store holds one therapist's recurring weekly template and blocked intervals.
// It is a single-owner, in-process holder: callers serialize access themselves
// (the booking usecase does so with per-therapist day locks).
type Store struct {
	rules   [7]models.WorkingHourRule
	blocked []models.BlockedInterval
}

// NewStore returns a store with the default template: one rule per weekday,
// all disabled.
func NewStore() *Store {
	s := &Store{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s.rules[wd] = models.WorkingHourRule{
			Weekday: wd,
			Enabled: false,
			Start:   models.Clock{H: 9, M: 0},
			End:     models.Clock{H: 17, M: 0},
		}
	}
	return s
}

// NewStoreFromDocument hydrates a store from the persisted availability
// document. Unknown or missing weekdays fall back to the disabled default.
func NewStoreFromDocument(doc *models.TherapistAvailability) *Store {
	s := NewStore()
	if doc == nil {
		return s
	}
	for _, r := range doc.Rules {
		if r.Weekday >= time.Sunday && r.Weekday <= time.Saturday {
			s.rules[r.Weekday] = r
		}
	}
	s.blocked = append(s.blocked, doc.Blocked...)
	return s
}

// Document flattens the store back into its persisted shape.
func (s *Store) Document(therapistID string) *models.TherapistAvailability {
	doc := &models.TherapistAvailability{
		TherapistID: therapistID,
		Rules:       make([]models.WorkingHourRule, 0, len(s.rules)),
		Blocked:     append([]models.BlockedInterval(nil), s.blocked...),
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		doc.Rules = append(doc.Rules, s.rules[wd])
	}
	return doc
}

// SetWorkingHours replaces the weekly template. The rule set must contain
// exactly one rule per weekday, and every enabled rule must have start before
// end. Validation runs over the whole set before anything is assigned, so a
// rejected set never leaves a partial template behind.
func (s *Store) SetWorkingHours(rules []models.WorkingHourRule) error {
	if len(rules) != 7 {
		return validationErrorf("expected 7 working hour rules, got %d", len(rules))
	}
	var next [7]models.WorkingHourRule
	var seen [7]bool
	for i, r := range rules {
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return validationErrorf("rules[%d]: unknown weekday %d", i, r.Weekday)
		}
		if seen[r.Weekday] {
			return validationErrorf("rules[%d]: duplicate rule for %s", i, r.Weekday)
		}
		if r.Enabled && !r.Start.Before(r.End) {
			return validationErrorf("rules[%d]: %s start %s must be before end %s", i, r.Weekday, r.Start, r.End)
		}
		seen[r.Weekday] = true
		next[r.Weekday] = r
	}
	s.rules = next
	return nil
}

// AddBlockedInterval validates and stores a blocked interval, assigning an ID
// when the caller did not supply one. AllDay intervals must omit wall times;
// timed intervals require start before end.
func (s *Store) AddBlockedInterval(iv models.BlockedInterval) (models.BlockedInterval, error) {
	iv.StartDate = models.DateOf(iv.StartDate)
	iv.EndDate = models.DateOf(iv.EndDate)

	if iv.StartDate.IsZero() || iv.EndDate.IsZero() {
		return models.BlockedInterval{}, validationErrorf("blocked interval requires start and end dates")
	}
	if iv.EndDate.Before(iv.StartDate) {
		return models.BlockedInterval{}, validationErrorf("blocked interval start date %s is after end date %s",
			iv.StartDate.Format("2006-01-02"), iv.EndDate.Format("2006-01-02"))
	}
	if iv.AllDay {
		if iv.Start != (models.Clock{}) || iv.End != (models.Clock{}) {
			return models.BlockedInterval{}, validationErrorf("all-day blocked interval must omit times")
		}
	} else if !iv.Start.Before(iv.End) {
		return models.BlockedInterval{}, validationErrorf("blocked interval start %s must be before end %s", iv.Start, iv.End)
	}

	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	s.blocked = append(s.blocked, iv)
	return iv, nil
}

// RemoveBlockedInterval deletes by ID. Removing an absent ID is a no-op:
// absence is a normal state in a sparse calendar, not an error.
func (s *Store) RemoveBlockedInterval(id string) {
	for i, iv := range s.blocked {
		if iv.ID == id {
			s.blocked = append(s.blocked[:i], s.blocked[i+1:]...)
			return
		}
	}
}

// WorkingSpan returns the contiguous [start, end) window declared for the
// weekday, with enabled=false when the day is off.
func (s *Store) WorkingSpan(wd time.Weekday) (start, end models.Clock, enabled bool) {
	if wd < time.Sunday || wd > time.Saturday {
		return models.Clock{}, models.Clock{}, false
	}
	r := s.rules[wd]
	return r.Start, r.End, r.Enabled
}

// IsWorkingTime reports whether the instant falls inside the weekday's
// declared [start, end) window.
func (s *Store) IsWorkingTime(date time.Time, at models.Clock) bool {
	start, end, enabled := s.WorkingSpan(date.Weekday())
	if !enabled {
		return false
	}
	return at.Minutes() >= start.Minutes() && at.Minutes() < end.Minutes()
}

// IsBlocked reports whether any blocked interval covers the instant.
func (s *Store) IsBlocked(date time.Time, at models.Clock) bool {
	day := models.DateOf(date)
	for _, iv := range s.blocked {
		if !blockAppliesOn(iv, day) {
			continue
		}
		if iv.AllDay {
			return true
		}
		if at.Minutes() >= iv.Start.Minutes() && at.Minutes() < iv.End.Minutes() {
			return true
		}
	}
	return false
}

// BlockedWithin reports whether any blocked interval overlaps the wall-clock
// window [start, end) on the given date.
func (s *Store) BlockedWithin(date time.Time, start, end models.Clock) bool {
	day := models.DateOf(date)
	for _, iv := range s.blocked {
		if !blockAppliesOn(iv, day) {
			continue
		}
		if iv.AllDay {
			return true
		}
		if start.Minutes() < iv.End.Minutes() && iv.Start.Minutes() < end.Minutes() {
			return true
		}
	}
	return false
}

// BlockedIntervals returns a copy of the stored intervals.
func (s *Store) BlockedIntervals() []models.BlockedInterval {
	return append([]models.BlockedInterval(nil), s.blocked...)
}

// Rules returns the weekly template ordered Sunday through Saturday.
func (s *Store) Rules() []models.WorkingHourRule {
	out := make([]models.WorkingHourRule, 0, len(s.rules))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		out = append(out, s.rules[wd])
	}
	return out
}

// blockAppliesOn resolves whether the interval covers the calendar day.
// Recurring intervals repeat on the StartDate weekday every week on/after
// StartDate with no end condition; they stay in effect until removed.
func blockAppliesOn(iv models.BlockedInterval, day time.Time) bool {
	if iv.RecurringWeekly {
		return !day.Before(iv.StartDate) && day.Weekday() == iv.StartDate.Weekday()
	}
	return !day.Before(iv.StartDate) && !day.After(iv.EndDate)
}
