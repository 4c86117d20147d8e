package center

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/redis"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

type advanceStatusInput struct {
	Status            models.BookingStatus `json:"status"`
	Message           string               `json:"message"`
	ProposedDate      string               `json:"proposed_date"`
	ProposedTimeSlot  string               `json:"proposed_time_slot"`
	EstimatedDuration *models.Duration     `json:"estimated_duration"`
}

// AdvanceBookingStatus moves a booking along its lifecycle. Only the assigned
// service center may call it. Confirming also marks work started: the booking
// lands in in_progress with both confirmed_at and started_at set. Completion
// is not reachable here; it requires a service report.
func AdvanceBookingStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input advanceStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Owner").First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Booking not found", &utils.NotFoundError{Resource: "booking"})
	}
	if booking.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}

	if input.Status == models.StatusCompleted {
		return utils.Fail(c, "Cannot complete booking", &utils.StateError{
			Current:   string(booking.Status),
			Attempted: "complete without a service report",
		})
	}

	if input.Message != "" || input.ProposedDate != "" || input.ProposedTimeSlot != "" || input.EstimatedDuration != nil {
		booking.CenterResponse = &models.CenterResponse{
			Message:           input.Message,
			ProposedDate:      input.ProposedDate,
			ProposedTimeSlot:  input.ProposedTimeSlot,
			EstimatedDuration: input.EstimatedDuration,
		}
	}

	if err := booking.UpdateStatus(db.DB, input.Status); err != nil {
		return utils.Fail(c, "Cannot update booking status", err)
	}

	// Rejecting or cancelling frees the slot.
	if booking.Status.Terminal() {
		redis.InvalidateAvailability(booking.ProviderID)
	}
	notifyStatusChanged(&booking)

	return c.JSON(booking)
}

// GetUpcomingBookings returns the center's active bookings in a date window.
func GetUpcomingBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	now := time.Now().UTC()
	startDate := utils.Today()
	endDate := startDate.AddDate(0, 1, 0)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		endDate = startDate.AddDate(0, 0, 1)
	case "tomorrow":
		startDate = startDate.AddDate(0, 0, 1)
		endDate = startDate.AddDate(0, 0, 1)
	case "week":
		endDate = startDate.AddDate(0, 0, 7)
	case "month":
		endDate = startDate.AddDate(0, 1, 0)
	}

	var bookings []models.Booking
	err := db.DB.Preload("Owner").
		Where("provider_id = ?", userID).
		Where("preferred_date >= ? AND preferred_date < ?", startDate, endDate).
		Where("status IN ?", models.ActiveStatuses).
		Order("preferred_date asc, preferred_time_slot asc").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bookings":   bookings,
		"count":      len(bookings),
		"filter":     dateFilter,
		"start_date": startDate.Format(utils.DateLayout),
		"end_date":   endDate.Format(utils.DateLayout),
		"as_of":      now.Format(time.RFC3339),
	})
}

// GetBookingHistory returns the center's terminal bookings, newest first.
func GetBookingHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := db.DB.Preload("Owner").
		Where("provider_id = ?", userID).
		Where("status IN ?", []models.BookingStatus{models.StatusCompleted, models.StatusRejected, models.StatusCancelled})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Model(&models.Booking{}).Count(&total)

	var bookings []models.Booking
	if err := query.Order("preferred_date desc, created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch booking history",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func notifyStatusChanged(booking *models.Booking) {
	subject := "Booking Status Updated"
	detail := ""
	switch booking.Status {
	case models.StatusInProgress:
		subject = "Booking Confirmed"
		detail = "Your booking has been confirmed and work has started."
	case models.StatusRejected:
		subject = "Booking Rejected"
		detail = "Unfortunately the service center could not accept your booking."
	case models.StatusCancelled:
		subject = "Booking Cancelled"
		detail = "Your booking was cancelled by the service center."
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
	`, booking.Owner.Name, detail, booking.BookingRef,
		booking.PreferredDate.Format(utils.DateLayout), booking.PreferredTimeSlot, booking.Status)

	if booking.CenterResponse != nil && booking.CenterResponse.Message != "" {
		body += fmt.Sprintf("<p>Message from the service center: %s</p>", booking.CenterResponse.Message)
	}

	utils.NotifyEmail(booking.Owner.Email, subject, body)
}
