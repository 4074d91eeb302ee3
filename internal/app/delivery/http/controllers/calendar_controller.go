package controllers

import (
	"context"
	"net/http"
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/exceptions"
	"soulful-sync-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalendarController struct {
	Log             *zap.Logger
	CalendarUsecase contracts.CalendarUsecase
	InternalConfig  *config.InternalConfig
}

func NewCalendarController(logger *zap.Logger, calendarUsecase contracts.CalendarUsecase, internalConfig *config.InternalConfig) *CalendarController {
	return &CalendarController{
		Log:             logger,
		CalendarUsecase: calendarUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *CalendarController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("CalendarController.GetCalendar requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	therapistID := chi.URLParam(r, constvars.URLParamTherapistID)
	if therapistID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamTherapistID))
		return
	}

	request := &requests.CalendarQuery{
		View:  r.URL.Query().Get(constvars.URLQueryParamView),
		Start: r.URL.Query().Get(constvars.URLQueryParamStart),
		End:   r.URL.Query().Get(constvars.URLQueryParamEnd),
	}
	ctrl.applyDefaults(request)
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("CalendarController.GetCalendar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.CalendarUsecase.GetCalendar(ctx, therapistID, request)
	if err != nil {
		ctrl.Log.Error("Error in CalendarUsecase.GetCalendar",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCalendarSuccess, response)
}

// applyDefaults fills the omitted query params from the calendar config so a
// bare GET returns the default window starting today.
func (ctrl *CalendarController) applyDefaults(request *requests.CalendarQuery) {
	if request.View == "" {
		request.View = ctrl.InternalConfig.Calendar.DefaultView
	}
	if request.Start == "" {
		request.Start = utils.FormatDate(time.Now().UTC())
	}
	if request.End == "" {
		start, err := utils.ParseDate(request.Start)
		if err != nil {
			return
		}
		rangeDays := ctrl.InternalConfig.Calendar.DefaultRangeDays
		if request.View == constvars.CalendarViewDay {
			rangeDays = 1
		}
		request.End = utils.FormatDate(start.AddDate(0, 0, rangeDays))
	}
}
