package appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
)

func appt(id string, date time.Time, start models.Clock, status string) models.Appointment {
	return models.Appointment{
		ID:              id,
		TherapistID:     "therapist-1",
		ClientID:        "client-1",
		Date:            date,
		Start:           start,
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestUpsertAndFindAt(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	idx := NewIndex()

	idx.Upsert(appt("a1", monday, models.Clock{H: 10}, constvars.AppointmentStatusPending))

	found := idx.FindAt(monday, models.Clock{H: 10})
	require.NotNil(t, found)
	assert.Equal(t, "a1", found.ID)

	assert.Nil(t, idx.FindAt(monday, models.Clock{H: 11}))
	assert.Nil(t, idx.FindAt(monday.AddDate(0, 0, 1), models.Clock{H: 10}))

	// Upserting the same id replaces the stored entry.
	idx.Upsert(appt("a1", monday, models.Clock{H: 10}, constvars.AppointmentStatusConfirmed))
	found = idx.FindAt(monday, models.Clock{H: 10})
	require.NotNil(t, found)
	assert.Equal(t, constvars.AppointmentStatusConfirmed, found.Status)
}

func TestFindAtKeepsCancelled(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	idx := NewIndex()
	idx.Upsert(appt("a1", monday, models.Clock{H: 10}, constvars.AppointmentStatusCancelled))

	// A lone tombstone is still findable; occupancy is the caller's question.
	found := idx.FindAt(monday, models.Clock{H: 10})
	require.NotNil(t, found)
	assert.False(t, found.Occupies())
}

func TestFindAtPrefersOccupyingAppointment(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// Cancel-and-rebook leaves a cancelled tombstone and a confirmed
	// appointment at the same start. The confirmed one must win regardless
	// of map iteration order.
	for i := 0; i < 50; i++ {
		idx := NewIndex()
		idx.Upsert(appt("old", monday, models.Clock{H: 10}, constvars.AppointmentStatusCancelled))
		idx.Upsert(appt("new", monday, models.Clock{H: 10}, constvars.AppointmentStatusConfirmed))

		found := idx.FindAt(monday, models.Clock{H: 10})
		require.NotNil(t, found)
		assert.Equal(t, "new", found.ID)
		assert.True(t, found.Occupies())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	idx := NewIndex()
	idx.Upsert(appt("a1", monday, models.Clock{H: 10}, constvars.AppointmentStatusPending))

	idx.Remove("a1")
	assert.Nil(t, idx.FindAt(monday, models.Clock{H: 10}))

	idx.Remove("a1")
	idx.Remove("never-existed")
	assert.Nil(t, idx.FindAt(monday, models.Clock{H: 10}))
}

func TestFindInRange(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	idx := NewIndexFrom([]models.Appointment{
		appt("a3", monday.AddDate(0, 0, 2), models.Clock{H: 9}, constvars.AppointmentStatusConfirmed),
		appt("a1", monday, models.Clock{H: 14}, constvars.AppointmentStatusPending),
		appt("a2", monday, models.Clock{H: 10}, constvars.AppointmentStatusPending),
		appt("a4", monday.AddDate(0, 0, 7), models.Clock{H: 9}, constvars.AppointmentStatusPending),
	})

	got := idx.FindInRange(monday, monday.AddDate(0, 0, 7))
	require.Len(t, got, 3)
	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, "a1", got[1].ID)
	assert.Equal(t, "a3", got[2].ID)

	// End bound is exclusive: an appointment starting exactly at end stays out.
	got = idx.FindInRange(monday, monday.AddDate(0, 0, 2))
	require.Len(t, got, 2)
}

func TestOnDay(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	idx := NewIndexFrom([]models.Appointment{
		appt("a1", monday, models.Clock{H: 10}, constvars.AppointmentStatusPending),
		appt("a2", monday.AddDate(0, 0, 1), models.Clock{H: 10}, constvars.AppointmentStatusPending),
	})

	got := idx.OnDay(monday)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)

	// Timestamps with a time-of-day component resolve to the same calendar day.
	got = idx.OnDay(monday.Add(15 * time.Hour))
	require.Len(t, got, 1)
}
