package routers

import (
	"soulful-sync-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachCalendarRoutes(router chi.Router, calendarController *controllers.CalendarController) {
	router.Get("/calendar", calendarController.GetCalendar)
}
