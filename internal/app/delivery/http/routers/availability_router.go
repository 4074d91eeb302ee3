package routers

import (
	"soulful-sync-service/internal/app/delivery/http/controllers"
	"soulful-sync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.Get("/availability", availabilityController.GetAvailability)
	router.With(middlewares.Authenticate).Put("/working-hours", availabilityController.UpdateWorkingHours)
	router.With(middlewares.Authenticate).Post("/blocked-intervals", availabilityController.AddBlockedInterval)
	router.With(middlewares.Authenticate).Delete("/blocked-intervals/{interval_id}", availabilityController.RemoveBlockedInterval)
}
