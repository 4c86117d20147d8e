package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/controllers"
	"github.com/Dark-Zeus/auto-connect-sub001/middleware"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
)

// SetupScheduleRoutes configures weekly template, blocked dates and the
// public availability projection.
func SetupScheduleRoutes(app *fiber.App) {
	schedules := app.Group("/schedules")
	schedules.Get("/:providerID", controllers.GetSchedule)
	schedules.Get("/:providerID/availability", controllers.GetAvailability)

	manage := app.Group("/schedule", middleware.Protected(), middleware.RequireRole(models.RoleServiceCenter, models.RoleAdmin))
	manage.Put("/", controllers.SetSchedule)
	manage.Get("/blocked-dates", controllers.GetBlockedDates)
	manage.Post("/blocked-dates", controllers.BlockDate)
	manage.Delete("/blocked-dates/:date", controllers.UnblockDate)
}
