package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/exceptions"
	"soulful-sync-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	SessionService contracts.SessionService
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, sessionService contracts.SessionService) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		SessionService: sessionService,
	}
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID, userID, err := ctrl.identify(r, "CreateBooking")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateBooking)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.CreateBooking(ctx, userID, request)
	if err != nil {
		ctrl.Log.Error("Error in BookingUsecase.CreateBooking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookingCreatedSuccess, response)
}

func (ctrl *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	requestID, userID, err := ctrl.identify(r, "CancelBooking")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	bookingID := chi.URLParam(r, constvars.URLParamBookingID)
	if bookingID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamBookingID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.CancelBooking(ctx, bookingID, userID)
	if err != nil {
		ctrl.Log.Error("Error in BookingUsecase.CancelBooking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingCancelledSuccess, response)
}

func (ctrl *BookingController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, _, err := ctrl.identify(r, "ListAppointments")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	therapistID := chi.URLParam(r, constvars.URLParamTherapistID)
	if therapistID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamTherapistID))
		return
	}

	request := &requests.ListAppointments{
		Status:   r.URL.Query().Get(constvars.URLQueryParamStatus),
		Page:     queryInt(r, constvars.URLQueryParamPage, 1),
		PageSize: queryInt(r, constvars.URLQueryParamPageSize, 20),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, total, err := ctrl.BookingUsecase.ListAppointments(ctx, therapistID, request)
	if err != nil {
		ctrl.Log.Error("Error in BookingUsecase.ListAppointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(int(total), request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAppointmentsSuccess, pagination, response)
}

// identify extracts the request ID and resolves the session to a user ID.
func (ctrl *BookingController) identify(r *http.Request, op string) (requestID, userID string, err error) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController." + op + " requestID not found in context")
		return "", "", exceptions.ErrMissingRequestID(nil)
	}

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController."+op+" sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		return "", "", exceptions.ErrMissingSessionData(nil)
	}

	session, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		return "", "", err
	}

	ctrl.Log.Info("BookingController."+op+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	return requestID, session.UserID, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
