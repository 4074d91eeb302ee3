package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/app/services/core/appointments"
	"soulful-sync-service/internal/pkg/constvars"
)

func conflictReason(t *testing.T, err error) ConflictReason {
	t.Helper()
	var c *Conflict
	require.ErrorAs(t, err, &c)
	return c.Reason
}

func TestValidateBookingWorkingHours(t *testing.T) {
	store := storeWithMonday(t, models.Clock{H: 9}, models.Clock{H: 17})
	idx := appointments.NewIndex()
	p := NewProjector(DefaultOptions())

	t.Run("session ending exactly at closing time is accepted", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 16, M: 30}, 30, store, idx)
		assert.NoError(t, err)
	})

	t.Run("session spilling past closing time is rejected", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 16, M: 45}, 30, store, idx)
		assert.Equal(t, ConflictOutsideWorkingHours, conflictReason(t, err))
	})

	t.Run("session starting before opening time is rejected", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 8, M: 30}, 60, store, idx)
		assert.Equal(t, ConflictOutsideWorkingHours, conflictReason(t, err))
	})

	t.Run("disabled day rejects any session", func(t *testing.T) {
		err := p.ValidateBooking(monday.AddDate(0, 0, 1), models.Clock{H: 10}, 30, store, idx)
		assert.Equal(t, ConflictOutsideWorkingHours, conflictReason(t, err))
	})
}

func TestValidateBookingBlocked(t *testing.T) {
	store := storeWithMonday(t, models.Clock{H: 9}, models.Clock{H: 17})
	_, err := store.AddBlockedInterval(models.BlockedInterval{
		StartDate: monday,
		EndDate:   monday,
		Start:     models.Clock{H: 12},
		End:       models.Clock{H: 13},
	})
	require.NoError(t, err)
	idx := appointments.NewIndex()
	p := NewProjector(DefaultOptions())

	t.Run("window inside the block is rejected", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 12}, 60, store, idx)
		assert.Equal(t, ConflictBlocked, conflictReason(t, err))
	})

	t.Run("window partially overlapping the block is rejected", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 11, M: 30}, 60, store, idx)
		assert.Equal(t, ConflictBlocked, conflictReason(t, err))
	})

	t.Run("window touching the block boundary is accepted", func(t *testing.T) {
		assert.NoError(t, p.ValidateBooking(monday, models.Clock{H: 11}, 60, store, idx))
		assert.NoError(t, p.ValidateBooking(monday, models.Clock{H: 13}, 60, store, idx))
	})
}

func TestValidateBookingDoubleBooked(t *testing.T) {
	store := storeWithMonday(t, models.Clock{H: 9}, models.Clock{H: 17})
	idx := appointments.NewIndex()
	idx.Upsert(models.Appointment{
		ID:              "a1",
		Date:            monday,
		Start:           models.Clock{H: 10},
		DurationMinutes: 60,
		Status:          constvars.AppointmentStatusConfirmed,
	})
	p := NewProjector(DefaultOptions())

	t.Run("window overlapping an occupying appointment is rejected", func(t *testing.T) {
		err := p.ValidateBooking(monday, models.Clock{H: 10, M: 30}, 30, store, idx)
		assert.Equal(t, ConflictDoubleBooked, conflictReason(t, err))
	})

	t.Run("back-to-back sessions are accepted", func(t *testing.T) {
		assert.NoError(t, p.ValidateBooking(monday, models.Clock{H: 11}, 60, store, idx))
		assert.NoError(t, p.ValidateBooking(monday, models.Clock{H: 9}, 60, store, idx))
	})

	t.Run("cancelled appointments do not collide", func(t *testing.T) {
		idx.Upsert(models.Appointment{
			ID:              "a2",
			Date:            monday,
			Start:           models.Clock{H: 14},
			DurationMinutes: 60,
			Status:          constvars.AppointmentStatusCancelled,
		})
		assert.NoError(t, p.ValidateBooking(monday, models.Clock{H: 14}, 60, store, idx))
	})
}

func TestValidateBookingCheckOrder(t *testing.T) {
	// A window failing every check reports the working-hours conflict first.
	store := storeWithMonday(t, models.Clock{H: 9}, models.Clock{H: 17})
	_, err := store.AddBlockedInterval(models.BlockedInterval{
		StartDate: monday,
		EndDate:   monday,
		AllDay:    true,
	})
	require.NoError(t, err)
	idx := appointments.NewIndex()
	idx.Upsert(models.Appointment{
		ID:              "a1",
		Date:            monday,
		Start:           models.Clock{H: 18},
		DurationMinutes: 60,
		Status:          constvars.AppointmentStatusConfirmed,
	})

	p := NewProjector(DefaultOptions())
	err = p.ValidateBooking(monday, models.Clock{H: 18}, 60, store, idx)
	assert.Equal(t, ConflictOutsideWorkingHours, conflictReason(t, err))
}

func TestIntervalsOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 540, 600, 660, 720, false},
		{"touching endpoints", 540, 600, 600, 660, false},
		{"partial overlap", 540, 630, 600, 660, true},
		{"containment", 540, 720, 600, 660, true},
		{"identical", 600, 660, 600, 660, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IntervalsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, IntervalsOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}
