package routers

import (
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/delivery/http/controllers"
	"soulful-sync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, internalConfig *config.InternalConfig, m *middlewares.Middlewares, bookingController *controllers.BookingController) {
	bookingLimiter := middlewares.NewRateLimiter(internalConfig.Booking.MaxBookingsPerMinute, time.Minute, 5*time.Minute)

	router.With(m.Authenticate, bookingLimiter.Limit).Post("/", bookingController.CreateBooking)
	router.With(m.Authenticate).Post("/{booking_id}/cancel", bookingController.CancelBooking)
}

func attachAppointmentListRoute(router chi.Router, m *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.With(m.Authenticate).Get("/appointments", bookingController.ListAppointments)
}
