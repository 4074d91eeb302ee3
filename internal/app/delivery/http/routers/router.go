package routers

import (
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/delivery/http/controllers"
	"soulful-sync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	availabilityController *controllers.AvailabilityController,
	calendarController *controllers.CalendarController,
	bookingController *controllers.BookingController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/therapists/{therapist_id}", func(r chi.Router) {
			attachAvailabilityRoutes(r, middlewares, availabilityController)
			attachCalendarRoutes(r, calendarController)
			attachAppointmentListRoute(r, middlewares, bookingController)
		})

		r.Route("/bookings", func(r chi.Router) {
			attachBookingRoutes(r, internalConfig, middlewares, bookingController)
		})
	})
}
