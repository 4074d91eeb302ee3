package bookings

import (
	"context"
	"testing"
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/app/services/core/calendar"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByTherapistAndRange(ctx context.Context, therapistID string, start, end time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, therapistID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByTherapistPaged(ctx context.Context, therapistID, status string, page, pageSize int) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, therapistID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Appointment), args.Get(1).(int64), args.Error(2)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) FindByTherapistID(ctx context.Context, therapistID string) (*models.TherapistAvailability, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TherapistAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) Upsert(ctx context.Context, availability *models.TherapistAvailability) error {
	args := m.Called(ctx, availability)
	return args.Error(0)
}

type MockLockService struct {
	mock.Mock
}

func (m *MockLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingCreated(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBookingCancelled(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

// 2026-03-02 is a Monday.
var bookingMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayAvailability() *models.TherapistAvailability {
	rules := make([]models.WorkingHourRule, 7)
	for wd := range rules {
		rules[wd] = models.WorkingHourRule{Weekday: time.Weekday(wd)}
	}
	rules[time.Monday] = models.WorkingHourRule{
		Weekday: time.Monday,
		Enabled: true,
		Start:   models.Clock{H: 9, M: 0},
		End:     models.Clock{H: 17, M: 0},
	}
	return &models.TherapistAvailability{
		TherapistID: "therapist-1",
		Rules:       rules,
	}
}

func newTestUsecase(appts *MockAppointmentRepository, avail *MockAvailabilityRepository, locks *MockLockService, events *MockEventPublisher) *bookingUsecase {
	return &bookingUsecase{
		AppointmentRepository:  appts,
		AvailabilityRepository: avail,
		LockService:            locks,
		EventPublisher:         events,
		Projector:              calendar.NewProjector(calendar.DefaultOptions()),
		InternalConfig: &config.InternalConfig{
			Booking: config.Booking{DayLockTTLInSeconds: 15},
		},
		Log: zap.NewNop(),
	}
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok, "expected a *exceptions.CustomError, got %T", err)
	return customErr.StatusCode
}

func TestBookingUsecase_CreateBooking(t *testing.T) {
	ctx := context.Background()

	request := &requests.CreateBooking{
		TherapistID:     "therapist-1",
		Date:            "2026-03-02",
		Start:           "10:00",
		DurationMinutes: 60,
	}

	t.Run("commits and publishes when the slot is free", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		avail := new(MockAvailabilityRepository)
		locks := new(MockLockService)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, avail, locks, events)

		locks.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token-1", nil).Once()
		locks.On("Unlock", mock.Anything, mock.Anything, "token-1").Return(nil).Once()
		avail.On("FindByTherapistID", mock.Anything, "therapist-1").Return(mondayAvailability(), nil).Once()
		appts.On("FindByTherapistAndRange", mock.Anything, "therapist-1", bookingMonday, bookingMonday.AddDate(0, 0, 1)).
			Return([]models.Appointment{}, nil).Once()
		appts.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Return(&models.Appointment{}, nil).Once()
		events.On("PublishBookingCreated", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()

		response, err := uc.CreateBooking(ctx, "client-1", request)

		assert.NoError(t, err)
		assert.NotEmpty(t, response.ID)
		assert.Equal(t, constvars.AppointmentStatusPending, response.Status)
		assert.Equal(t, "10:00", response.Start)
		assert.Equal(t, "11:00", response.End)
		appts.AssertExpectations(t)
		locks.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("returns 409 when the day lock is held", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		avail := new(MockAvailabilityRepository)
		locks := new(MockLockService)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, avail, locks, events)

		locks.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil).Once()

		_, err := uc.CreateBooking(ctx, "client-1", request)

		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		appts.AssertNotCalled(t, "Insert")
	})

	t.Run("returns 409 and does not commit on a double booking", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		avail := new(MockAvailabilityRepository)
		locks := new(MockLockService)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, avail, locks, events)

		locks.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token-1", nil).Once()
		locks.On("Unlock", mock.Anything, mock.Anything, "token-1").Return(nil).Once()
		avail.On("FindByTherapistID", mock.Anything, "therapist-1").Return(mondayAvailability(), nil).Once()
		appts.On("FindByTherapistAndRange", mock.Anything, "therapist-1", bookingMonday, bookingMonday.AddDate(0, 0, 1)).
			Return([]models.Appointment{{
				ID:              "existing",
				TherapistID:     "therapist-1",
				Date:            bookingMonday,
				Start:           models.Clock{H: 10, M: 30},
				DurationMinutes: 60,
				Status:          constvars.AppointmentStatusConfirmed,
			}}, nil).Once()

		_, err := uc.CreateBooking(ctx, "client-1", request)

		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		appts.AssertNotCalled(t, "Insert")
		events.AssertNotCalled(t, "PublishBookingCreated")
	})

	t.Run("returns 409 outside working hours", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		avail := new(MockAvailabilityRepository)
		locks := new(MockLockService)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, avail, locks, events)

		locks.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token-1", nil).Once()
		locks.On("Unlock", mock.Anything, mock.Anything, "token-1").Return(nil).Once()
		avail.On("FindByTherapistID", mock.Anything, "therapist-1").Return(mondayAvailability(), nil).Once()
		appts.On("FindByTherapistAndRange", mock.Anything, "therapist-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{}, nil).Once()

		lateRequest := &requests.CreateBooking{
			TherapistID:     "therapist-1",
			Date:            "2026-03-02",
			Start:           "16:30",
			DurationMinutes: 60,
		}
		_, err := uc.CreateBooking(ctx, "client-1", lateRequest)

		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		appts.AssertNotCalled(t, "Insert")
	})

	t.Run("keeps the commit when event publishing fails", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		avail := new(MockAvailabilityRepository)
		locks := new(MockLockService)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, avail, locks, events)

		locks.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "token-1", nil).Once()
		locks.On("Unlock", mock.Anything, mock.Anything, "token-1").Return(nil).Once()
		avail.On("FindByTherapistID", mock.Anything, "therapist-1").Return(mondayAvailability(), nil).Once()
		appts.On("FindByTherapistAndRange", mock.Anything, "therapist-1", mock.Anything, mock.Anything).
			Return([]models.Appointment{}, nil).Once()
		appts.On("Insert", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Return(&models.Appointment{}, nil).Once()
		events.On("PublishBookingCreated", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Return(assert.AnError).Once()

		response, err := uc.CreateBooking(ctx, "client-1", request)

		assert.NoError(t, err)
		assert.NotNil(t, response)
	})
}

func TestBookingUsecase_CancelBooking(t *testing.T) {
	ctx := context.Background()

	existing := func() *models.Appointment {
		return &models.Appointment{
			ID:              "booking-1",
			TherapistID:     "therapist-1",
			ClientID:        "client-1",
			Date:            bookingMonday,
			Start:           models.Clock{H: 10, M: 0},
			DurationMinutes: 60,
			Status:          constvars.AppointmentStatusConfirmed,
		}
	}

	t.Run("cancels and publishes", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, new(MockAvailabilityRepository), new(MockLockService), events)

		appts.On("FindByID", mock.Anything, "booking-1").Return(existing(), nil).Once()
		appts.On("Update", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()
		events.On("PublishBookingCancelled", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()

		response, err := uc.CancelBooking(ctx, "booking-1", "client-1")

		assert.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)
		appts.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("therapist can cancel too", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, new(MockAvailabilityRepository), new(MockLockService), events)

		appts.On("FindByID", mock.Anything, "booking-1").Return(existing(), nil).Once()
		appts.On("Update", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()
		events.On("PublishBookingCancelled", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()

		_, err := uc.CancelBooking(ctx, "booking-1", "therapist-1")

		assert.NoError(t, err)
	})

	t.Run("unknown booking is 404", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		uc := newTestUsecase(appts, new(MockAvailabilityRepository), new(MockLockService), new(MockEventPublisher))

		appts.On("FindByID", mock.Anything, "missing").Return(nil, nil).Once()

		_, err := uc.CancelBooking(ctx, "missing", "client-1")

		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})

	t.Run("a stranger cannot cancel", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		uc := newTestUsecase(appts, new(MockAvailabilityRepository), new(MockLockService), new(MockEventPublisher))

		appts.On("FindByID", mock.Anything, "booking-1").Return(existing(), nil).Once()

		_, err := uc.CancelBooking(ctx, "booking-1", "someone-else")

		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
		appts.AssertNotCalled(t, "Update")
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		appts := new(MockAppointmentRepository)
		events := new(MockEventPublisher)
		uc := newTestUsecase(appts, new(MockAvailabilityRepository), new(MockLockService), events)

		done := existing()
		done.Status = constvars.AppointmentStatusCancelled
		appts.On("FindByID", mock.Anything, "booking-1").Return(done, nil).Once()

		response, err := uc.CancelBooking(ctx, "booking-1", "client-1")

		assert.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)
		appts.AssertNotCalled(t, "Update")
		events.AssertNotCalled(t, "PublishBookingCancelled")
	})
}
