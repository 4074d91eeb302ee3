package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
	"soulful-sync-service/internal/pkg/exceptions"
	"soulful-sync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	LockService            contracts.LockerService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	lockService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		availabilityUsecaseInstance = &availabilityUsecase{
			AvailabilityRepository: availabilityRepository,
			LockService:            lockService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) GetAvailability(ctx context.Context, therapistID string) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	store, err := uc.loadStore(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	return toAvailabilityResponse(therapistID, store), nil
}

func (uc *availabilityUsecase) UpdateWorkingHours(ctx context.Context, therapistID string, request *requests.UpdateWorkingHours) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.UpdateWorkingHours called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	rules, err := rulesFromRequest(request.Rules)
	if err != nil {
		return nil, err
	}

	release, err := uc.lockAvailability(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	defer release(ctx)

	store, err := uc.loadStore(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if err := store.SetWorkingHours(rules); err != nil {
		return nil, exceptions.ErrInvalidWorkingHours(err)
	}
	if err := uc.persist(ctx, therapistID, store); err != nil {
		return nil, err
	}
	return toAvailabilityResponse(therapistID, store), nil
}

func (uc *availabilityUsecase) AddBlockedInterval(ctx context.Context, therapistID string, request *requests.CreateBlockedInterval) (*responses.BlockedInterval, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.AddBlockedInterval called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	interval, err := intervalFromRequest(request)
	if err != nil {
		return nil, err
	}

	release, err := uc.lockAvailability(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	defer release(ctx)

	store, err := uc.loadStore(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	stored, err := store.AddBlockedInterval(interval)
	if err != nil {
		return nil, exceptions.ErrInvalidBlockedInterval(err)
	}
	if err := uc.persist(ctx, therapistID, store); err != nil {
		return nil, err
	}

	response := toBlockedIntervalResponse(stored)
	return &response, nil
}

func (uc *availabilityUsecase) RemoveBlockedInterval(ctx context.Context, therapistID, intervalID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.RemoveBlockedInterval called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
	)

	release, err := uc.lockAvailability(ctx, therapistID)
	if err != nil {
		return err
	}
	defer release(ctx)

	store, err := uc.loadStore(ctx, therapistID)
	if err != nil {
		return err
	}
	store.RemoveBlockedInterval(intervalID)
	return uc.persist(ctx, therapistID, store)
}

func (uc *availabilityUsecase) loadStore(ctx context.Context, therapistID string) (*Store, error) {
	doc, err := uc.AvailabilityRepository.FindByTherapistID(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDocument(doc), nil
}

func (uc *availabilityUsecase) persist(ctx context.Context, therapistID string, store *Store) error {
	doc := store.Document(therapistID)
	doc.SetUpdatedAt()
	return uc.AvailabilityRepository.Upsert(ctx, doc)
}

func (uc *availabilityUsecase) lockAvailability(ctx context.Context, therapistID string) (func(context.Context), error) {
	key := fmt.Sprintf(constvars.RedisKeyAvailabilityLockFormat, therapistID)
	ttl := time.Duration(uc.InternalConfig.Booking.DayLockTTLInSeconds) * time.Second

	acquired, token, err := uc.LockService.TryLock(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrCalendarLocked(nil)
	}
	return func(ctx context.Context) {
		_ = uc.LockService.Unlock(ctx, key, token)
	}, nil
}

func rulesFromRequest(in []requests.WorkingHourRule) ([]models.WorkingHourRule, error) {
	out := make([]models.WorkingHourRule, 0, len(in))
	for _, r := range in {
		start, okStart := models.ParseClock(r.Start)
		end, okEnd := models.ParseClock(r.End)
		if r.Enabled && (!okStart || !okEnd) {
			return nil, exceptions.ErrInvalidWorkingHours(fmt.Errorf("weekday %d: unparseable times", r.Weekday))
		}
		out = append(out, models.WorkingHourRule{
			Weekday: time.Weekday(r.Weekday),
			Enabled: r.Enabled,
			Start:   start,
			End:     end,
		})
	}
	return out, nil
}

func intervalFromRequest(in *requests.CreateBlockedInterval) (models.BlockedInterval, error) {
	startDate, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return models.BlockedInterval{}, exceptions.ErrCannotParseDate(err)
	}
	endDate, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return models.BlockedInterval{}, exceptions.ErrCannotParseDate(err)
	}

	var start, end models.Clock
	if !in.AllDay {
		var okStart, okEnd bool
		start, okStart = models.ParseClock(in.Start)
		end, okEnd = models.ParseClock(in.End)
		if !okStart || !okEnd {
			return models.BlockedInterval{}, exceptions.ErrInvalidBlockedInterval(fmt.Errorf("unparseable times"))
		}
	}

	return models.BlockedInterval{
		Title:           in.Title,
		StartDate:       startDate,
		EndDate:         endDate,
		Start:           start,
		End:             end,
		AllDay:          in.AllDay,
		RecurringWeekly: in.RecurringWeekly,
	}, nil
}

func toAvailabilityResponse(therapistID string, store *Store) *responses.Availability {
	out := &responses.Availability{
		TherapistID: therapistID,
		Rules:       make([]responses.WorkingHourRule, 0, 7),
		Blocked:     make([]responses.BlockedInterval, 0),
	}
	for _, r := range store.Rules() {
		out.Rules = append(out.Rules, responses.WorkingHourRule{
			Weekday: int(r.Weekday),
			Enabled: r.Enabled,
			Start:   r.Start.String(),
			End:     r.End.String(),
		})
	}
	for _, iv := range store.BlockedIntervals() {
		out.Blocked = append(out.Blocked, toBlockedIntervalResponse(iv))
	}
	return out
}

func toBlockedIntervalResponse(iv models.BlockedInterval) responses.BlockedInterval {
	out := responses.BlockedInterval{
		ID:              iv.ID,
		Title:           iv.Title,
		StartDate:       utils.FormatDate(iv.StartDate),
		EndDate:         utils.FormatDate(iv.EndDate),
		AllDay:          iv.AllDay,
		RecurringWeekly: iv.RecurringWeekly,
	}
	if !iv.AllDay {
		out.Start = iv.Start.String()
		out.End = iv.End.String()
	}
	return out
}
