package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/controllers/center"
	"github.com/Dark-Zeus/auto-connect-sub001/controllers/owner"
	"github.com/Dark-Zeus/auto-connect-sub001/middleware"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
)

// SetupOwnerRoutes configures all vehicle-owner related routes
func SetupOwnerRoutes(app *fiber.App) {
	ownerGroup := app.Group("/owner", middleware.Protected(), middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	ownerGroup.Post("/bookings", owner.CreateBooking)
	ownerGroup.Get("/bookings", owner.GetMyBookings)
	ownerGroup.Get("/bookings/:id", owner.GetBooking)
	ownerGroup.Post("/bookings/:id/cancel", owner.CancelBooking)
	ownerGroup.Post("/bookings/:id/feedback", owner.SubmitFeedback)
	ownerGroup.Get("/bookings/:id/report", center.GetReport)
}
