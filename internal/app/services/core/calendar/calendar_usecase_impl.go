package calendar

import (
	"context"
	"fmt"
	"sync"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/app/services/core/appointments"
	"soulful-sync-service/internal/app/services/core/availability"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
	"soulful-sync-service/internal/pkg/exceptions"
	"soulful-sync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type calendarUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	AppointmentRepository  contracts.AppointmentRepository
	Projector              *Projector
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	calendarUsecaseInstance contracts.CalendarUsecase
	onceCalendarUsecase     sync.Once
)

func NewCalendarUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	appointmentRepository contracts.AppointmentRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CalendarUsecase {
	onceCalendarUsecase.Do(func() {
		calendarUsecaseInstance = &calendarUsecase{
			AvailabilityRepository: availabilityRepository,
			AppointmentRepository:  appointmentRepository,
			Projector:              NewProjector(OptionsFromConfig(internalConfig)),
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return calendarUsecaseInstance
}

// OptionsFromConfig maps the calendar tuning config onto projector options,
// falling back to defaults for anything unset.
func OptionsFromConfig(cfg *config.InternalConfig) Options {
	opts := DefaultOptions()
	if cfg.Calendar.TickMinutes > 0 {
		opts.TickMinutes = cfg.Calendar.TickMinutes
	}
	if start, ok := models.ParseClock(cfg.Calendar.WindowStartClock); ok {
		opts.WindowStart = start
	}
	if end, ok := models.ParseClock(cfg.Calendar.WindowEndClock); ok {
		opts.WindowEnd = end
	}
	return opts
}

func (uc *calendarUsecase) GetCalendar(ctx context.Context, therapistID string, request *requests.CalendarQuery) (*responses.Calendar, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("calendarUsecase.GetCalendar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	view, ok := ParseView(request.View)
	if !ok {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("unknown calendar view %q", request.View))
	}

	start, err := utils.ParseDate(request.Start)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	end, err := utils.ParseDate(request.End)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !start.Before(end) {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("start date must be before end date"))
	}
	if maxDays := uc.InternalConfig.Calendar.MaxRangeDays; maxDays > 0 && int(end.Sub(start).Hours()/24) > maxDays {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("range exceeds %d days", maxDays))
	}

	doc, err := uc.AvailabilityRepository.FindByTherapistID(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	store := availability.NewStoreFromDocument(doc)

	appts, err := uc.AppointmentRepository.FindByTherapistAndRange(ctx, therapistID, start, end)
	if err != nil {
		return nil, err
	}
	index := appointments.NewIndexFrom(appts)

	grid := uc.Projector.Project(Range{Start: start, End: end}, view, store, index)
	return toCalendarResponse(therapistID, grid), nil
}

func toCalendarResponse(therapistID string, grid Grid) *responses.Calendar {
	out := &responses.Calendar{
		TherapistID: therapistID,
		View:        string(grid.View),
		Days:        make([]responses.CalendarDay, 0, len(grid.Days)),
	}
	for _, d := range grid.Days {
		day := responses.CalendarDay{
			Date:  utils.FormatDate(d.Date),
			State: string(d.State),
		}
		for _, s := range d.Slots {
			day.Slots = append(day.Slots, responses.CalendarSlot{
				At:    s.At.String(),
				State: string(s.State),
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}
