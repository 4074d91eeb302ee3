package controllers

import (
	"context"
	"net/http"
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

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	SessionService      contracts.SessionService
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, sessionService contracts.SessionService) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		SessionService:      sessionService,
	}
}

func (ctrl *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AvailabilityController.GetAvailability requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	therapistID := chi.URLParam(r, constvars.URLParamTherapistID)
	if therapistID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamTherapistID))
		return
	}

	ctrl.Log.Info("AvailabilityController.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AvailabilityUsecase.GetAvailability(ctx, therapistID)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.GetAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}

func (ctrl *AvailabilityController) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	requestID, therapistID, err := ctrl.authorizeTherapist(r, "UpdateWorkingHours")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateWorkingHours)
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

	response, err := ctrl.AvailabilityUsecase.UpdateWorkingHours(ctx, therapistID, request)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.UpdateWorkingHours",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WorkingHoursUpdatedSuccess, response)
}

func (ctrl *AvailabilityController) AddBlockedInterval(w http.ResponseWriter, r *http.Request) {
	requestID, therapistID, err := ctrl.authorizeTherapist(r, "AddBlockedInterval")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateBlockedInterval)
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

	response, err := ctrl.AvailabilityUsecase.AddBlockedInterval(ctx, therapistID, request)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.AddBlockedInterval",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BlockedIntervalCreatedSuccess, response)
}

func (ctrl *AvailabilityController) RemoveBlockedInterval(w http.ResponseWriter, r *http.Request) {
	requestID, therapistID, err := ctrl.authorizeTherapist(r, "RemoveBlockedInterval")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	intervalID := chi.URLParam(r, constvars.URLParamIntervalID)
	if intervalID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamIntervalID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.AvailabilityUsecase.RemoveBlockedInterval(ctx, therapistID, intervalID); err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.RemoveBlockedInterval",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BlockedIntervalRemovedSuccess, nil)
}

// authorizeTherapist extracts the request ID and the therapist path param, and
// verifies the session identity owns the calendar being written.
func (ctrl *AvailabilityController) authorizeTherapist(r *http.Request, op string) (requestID, therapistID string, err error) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AvailabilityController." + op + " requestID not found in context")
		return "", "", exceptions.ErrMissingRequestID(nil)
	}

	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
	if !ok {
		ctrl.Log.Error("AvailabilityController."+op+" sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		return "", "", exceptions.ErrMissingSessionData(nil)
	}

	therapistID = chi.URLParam(r, constvars.URLParamTherapistID)
	if therapistID == "" {
		return "", "", exceptions.ErrURLParamIDValidation(nil, constvars.URLParamTherapistID)
	}

	session, err := ctrl.SessionService.ParseSessionData(r.Context(), sessionData)
	if err != nil {
		return "", "", err
	}
	if session.TherapistID != therapistID {
		return "", "", exceptions.ErrNotAuthorized(nil)
	}

	ctrl.Log.Info("AvailabilityController."+op+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTherapistIDKey, therapistID))
	return requestID, therapistID, nil
}
