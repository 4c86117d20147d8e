package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/controllers/center"
	"github.com/Dark-Zeus/auto-connect-sub001/middleware"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
)

// SetupCenterRoutes configures all service-center related routes
func SetupCenterRoutes(app *fiber.App) {
	// Public catalog and profile reads.
	app.Get("/centers/:providerID/profile", center.GetCenterProfile)
	app.Get("/centers/:providerID/services", center.ListOfferings)

	centerGroup := app.Group("/center", middleware.Protected(), middleware.RequireRole(models.RoleServiceCenter, models.RoleAdmin))
	centerGroup.Get("/bookings/upcoming", center.GetUpcomingBookings)
	centerGroup.Get("/bookings/history", center.GetBookingHistory)
	centerGroup.Patch("/bookings/:id/status", center.AdvanceBookingStatus)
	centerGroup.Post("/bookings/:id/report", center.SubmitCompletionReport)
	centerGroup.Get("/bookings/:id/report", center.GetReport)
	centerGroup.Put("/profile", center.UpsertCenterProfile)
	centerGroup.Post("/services", center.CreateOffering)
	centerGroup.Patch("/services/:id", center.UpdateOffering)
	centerGroup.Delete("/services/:id", center.DeleteOffering)
}
