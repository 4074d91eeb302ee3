package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/delivery/http/controllers"
	"soulful-sync-service/internal/app/delivery/http/middlewares"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
	"soulful-sync-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) GetAvailability(ctx context.Context, therapistID string) (*responses.Availability, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Availability), args.Error(1)
}

func (m *MockAvailabilityUsecase) UpdateWorkingHours(ctx context.Context, therapistID string, request *requests.UpdateWorkingHours) (*responses.Availability, error) {
	args := m.Called(ctx, therapistID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Availability), args.Error(1)
}

func (m *MockAvailabilityUsecase) AddBlockedInterval(ctx context.Context, therapistID string, request *requests.CreateBlockedInterval) (*responses.BlockedInterval, error) {
	args := m.Called(ctx, therapistID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BlockedInterval), args.Error(1)
}

func (m *MockAvailabilityUsecase) RemoveBlockedInterval(ctx context.Context, therapistID, intervalID string) error {
	args := m.Called(ctx, therapistID, intervalID)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	args := m.Called(ctx, sessionData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func TestAvailabilityRouter(t *testing.T) {
	logger := zap.NewNop()

	testSecret := "test-jwt-secret-12345"
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{
			Secret:        testSecret,
			ExpTimeInHour: 1,
		},
	}

	mockUsecase := new(MockAvailabilityUsecase)
	mockSession := new(MockSessionService)

	availabilityController := controllers.NewAvailabilityController(logger, mockUsecase, mockSession)

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		SessionService: mockSession,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	router.Route("/therapists/{therapist_id}", func(r chi.Router) {
		attachAvailabilityRoutes(r, middlewareInstance, availabilityController)
	})

	sessionJSON := `{"session_id":"sess-1","user_id":"user-1","therapist_id":"therapist-1"}`
	session := &models.Session{
		SessionID:   "sess-1",
		UserID:      "user-1",
		TherapistID: "therapist-1",
	}

	token, err := utils.GenerateSessionJWT("sess-1", testSecret, 1)
	assert.NoError(t, err)

	t.Run("GetAvailability is public", func(t *testing.T) {
		mockUsecase.On("GetAvailability", mock.Anything, "therapist-1").Return(&responses.Availability{TherapistID: "therapist-1"}, nil).Once()

		req := httptest.NewRequest("GET", "/therapists/therapist-1/availability", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("UpdateWorkingHours with valid session", func(t *testing.T) {
		mockSession.On("GetSessionData", mock.Anything, "sess-1").Return(sessionJSON, nil).Once()
		mockSession.On("ParseSessionData", mock.Anything, sessionJSON).Return(session, nil).Once()
		mockUsecase.On("UpdateWorkingHours", mock.Anything, "therapist-1", mock.AnythingOfType("*requests.UpdateWorkingHours")).Return(&responses.Availability{TherapistID: "therapist-1"}, nil).Once()

		body := requests.UpdateWorkingHours{
			Rules: []requests.WorkingHourRule{
				{Weekday: 0},
				{Weekday: 1, Enabled: true, Start: "09:00", End: "17:00"},
				{Weekday: 2, Enabled: true, Start: "09:00", End: "17:00"},
				{Weekday: 3, Enabled: true, Start: "09:00", End: "17:00"},
				{Weekday: 4, Enabled: true, Start: "09:00", End: "17:00"},
				{Weekday: 5, Enabled: true, Start: "09:00", End: "13:00"},
				{Weekday: 6},
			},
		}
		jsonBody, _ := json.Marshal(body)

		req := httptest.NewRequest("PUT", "/therapists/therapist-1/working-hours", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
		mockSession.AssertExpectations(t)
	})

	t.Run("UpdateWorkingHours without token", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/therapists/therapist-1/working-hours", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockUsecase.AssertNotCalled(t, "UpdateWorkingHours")
	})

	t.Run("UpdateWorkingHours for another therapist is forbidden", func(t *testing.T) {
		mockSession.On("GetSessionData", mock.Anything, "sess-1").Return(sessionJSON, nil).Once()
		mockSession.On("ParseSessionData", mock.Anything, sessionJSON).Return(session, nil).Once()

		req := httptest.NewRequest("PUT", "/therapists/therapist-2/working-hours", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockUsecase.AssertNotCalled(t, "UpdateWorkingHours")
	})

	t.Run("RemoveBlockedInterval with valid session", func(t *testing.T) {
		mockSession.On("GetSessionData", mock.Anything, "sess-1").Return(sessionJSON, nil).Once()
		mockSession.On("ParseSessionData", mock.Anything, sessionJSON).Return(session, nil).Once()
		mockUsecase.On("RemoveBlockedInterval", mock.Anything, "therapist-1", "interval-9").Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/therapists/therapist-1/blocked-intervals/interval-9", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
	})
}
