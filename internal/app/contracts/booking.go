package contracts

import (
	"context"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, clientID string, request *requests.CreateBooking) (*responses.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID string) (*responses.Booking, error)
	ListAppointments(ctx context.Context, therapistID string, request *requests.ListAppointments) ([]responses.Booking, int64, error)
}

type BookingEventPublisher interface {
	PublishBookingCreated(ctx context.Context, appointment *models.Appointment) error
	PublishBookingCancelled(ctx context.Context, appointment *models.Appointment) error
}
