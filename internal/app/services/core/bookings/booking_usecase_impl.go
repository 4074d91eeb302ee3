package bookings

import (
	"context"
	"errors"
	"sync"
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/app/services/core/appointments"
	"soulful-sync-service/internal/app/services/core/availability"
	"soulful-sync-service/internal/app/services/core/calendar"
	"soulful-sync-service/internal/app/services/shared/locker"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
	"soulful-sync-service/internal/pkg/exceptions"
	"soulful-sync-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	AvailabilityRepository contracts.AvailabilityRepository
	LockService            contracts.LockerService
	EventPublisher         contracts.BookingEventPublisher
	Projector              *calendar.Projector
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	appointmentRepository contracts.AppointmentRepository,
	availabilityRepository contracts.AvailabilityRepository,
	lockService contracts.LockerService,
	eventPublisher contracts.BookingEventPublisher,
	projector *calendar.Projector,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			AppointmentRepository:  appointmentRepository,
			AvailabilityRepository: availabilityRepository,
			LockService:            lockService,
			EventPublisher:         eventPublisher,
			Projector:              projector,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return bookingUsecaseInstance
}

// CreateBooking validates the requested window under a per-day lock and
// commits the appointment only when every check passes. The lock covers the
// read-validate-write window so two clients racing for the same slot cannot
// both commit.
func (uc *bookingUsecase) CreateBooking(ctx context.Context, clientID string, request *requests.CreateBooking) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, request.TherapistID),
	)

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	start, ok := models.ParseClock(request.Start)
	if !ok {
		return nil, exceptions.ErrCannotParseTime(errors.New("unparseable start time"))
	}

	lockKey := locker.DayLockKey(request.TherapistID, date)
	ttl := time.Duration(uc.InternalConfig.Booking.DayLockTTLInSeconds) * time.Second
	acquired, token, err := uc.LockService.TryLock(ctx, lockKey, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrCalendarLocked(nil)
	}
	defer func() { _ = uc.LockService.Unlock(ctx, lockKey, token) }()

	doc, err := uc.AvailabilityRepository.FindByTherapistID(ctx, request.TherapistID)
	if err != nil {
		return nil, err
	}
	store := availability.NewStoreFromDocument(doc)

	existing, err := uc.AppointmentRepository.FindByTherapistAndRange(ctx, request.TherapistID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	index := appointments.NewIndexFrom(existing)

	if err := uc.Projector.ValidateBooking(date, start, request.DurationMinutes, store, index); err != nil {
		return nil, conflictToCustomError(err)
	}

	appointment := &models.Appointment{
		ID:              uuid.NewString(),
		TherapistID:     request.TherapistID,
		ClientID:        clientID,
		Date:            date,
		Start:           start,
		DurationMinutes: request.DurationMinutes,
		Status:          constvars.AppointmentStatusPending,
	}
	appointment.SetCreatedAtUpdatedAt()

	if _, err := uc.AppointmentRepository.Insert(ctx, appointment); err != nil {
		return nil, err
	}

	// The appointment is committed; a publish failure must not undo it.
	if err := uc.EventPublisher.PublishBookingCreated(ctx, appointment); err != nil {
		uc.Log.Error("bookingUsecase.CreateBooking event publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	response := toBookingResponse(appointment)
	return &response, nil
}

func (uc *bookingUsecase) CancelBooking(ctx context.Context, bookingID, requesterID string) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CancelBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrBookingNotFound(nil)
	}
	if requesterID != "" && requesterID != appointment.ClientID && requesterID != appointment.TherapistID {
		return nil, exceptions.ErrBookingNotFound(nil)
	}

	// Cancelling twice is a no-op.
	if appointment.Status == constvars.AppointmentStatusCancelled {
		response := toBookingResponse(appointment)
		return &response, nil
	}

	appointment.Status = constvars.AppointmentStatusCancelled
	appointment.SetUpdatedAt()
	if err := uc.AppointmentRepository.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if err := uc.EventPublisher.PublishBookingCancelled(ctx, appointment); err != nil {
		uc.Log.Error("bookingUsecase.CancelBooking event publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
	}

	response := toBookingResponse(appointment)
	return &response, nil
}

func (uc *bookingUsecase) ListAppointments(ctx context.Context, therapistID string, request *requests.ListAppointments) ([]responses.Booking, int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	page := request.Page
	if page < 1 {
		page = 1
	}
	pageSize := request.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	appts, total, err := uc.AppointmentRepository.FindByTherapistPaged(ctx, therapistID, request.Status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]responses.Booking, 0, len(appts))
	for i := range appts {
		out = append(out, toBookingResponse(&appts[i]))
	}
	return out, total, nil
}

func conflictToCustomError(err error) error {
	var conflict *calendar.Conflict
	if !errors.As(err, &conflict) {
		return exceptions.ErrServerProcess(err)
	}
	switch conflict.Reason {
	case calendar.ConflictOutsideWorkingHours:
		return exceptions.ErrBookingOutsideWorkingHours(err)
	case calendar.ConflictBlocked:
		return exceptions.ErrBookingBlocked(err)
	default:
		return exceptions.ErrBookingDoubleBooked(err)
	}
}

func toBookingResponse(a *models.Appointment) responses.Booking {
	return responses.Booking{
		ID:              a.ID,
		TherapistID:     a.TherapistID,
		ClientID:        a.ClientID,
		Date:            utils.FormatDate(a.Date),
		Start:           a.Start.String(),
		End:             a.EndClock().String(),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
