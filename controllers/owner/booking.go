package owner

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/redis"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

type createBookingInput struct {
	ProviderID        uint                   `json:"provider_id"`
	Vehicle           models.VehicleSnapshot `json:"vehicle"`
	Services          []string               `json:"services"`
	PreferredDate     string                 `json:"preferred_date"`
	PreferredTimeSlot string                 `json:"preferred_time_slot"`
	ContactPhone      string                 `json:"contact_phone"`
	ContactEmail      string                 `json:"contact_email"`
}

// CreateBooking books a slot with a service center. The conflict check and
// the insert run in one transaction over locked rows, backed by the partial
// unique index, so two racing requests for the same slot cannot both succeed.
func CreateBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input createBookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if len(input.Services) == 0 {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "services", Reason: "at least one service is required"})
	}
	if input.Vehicle.RegistrationNumber == "" {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "vehicle.registration_number", Reason: "required"})
	}

	var provider models.User
	if err := db.DB.Where("id = ? AND role = ?", input.ProviderID, models.RoleServiceCenter).First(&provider).Error; err != nil {
		return utils.Fail(c, "Unknown service center", &utils.NotFoundError{Resource: "service center"})
	}

	date, err := utils.ParseDate(input.PreferredDate)
	if err != nil {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "preferred_date", Reason: err.Error()})
	}
	startMin, err := utils.SlotStartMinutes(input.PreferredTimeSlot)
	if err != nil {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "preferred_time_slot", Reason: err.Error()})
	}

	now := time.Now().UTC()
	today := utils.Today()
	if date.Before(today) {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "preferred_date", Reason: "must not be in the past"})
	}
	if date.Equal(today) && startMin <= utils.MinutesOfDay(now) {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "preferred_time_slot", Reason: "time slot has already started"})
	}

	schedule, err := models.ScheduleForProvider(db.DB, input.ProviderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}
	if date.After(today.AddDate(0, 0, schedule.AdvanceBookingDays)) {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{
			Field:  "preferred_date",
			Reason: fmt.Sprintf("bookings may be made at most %d days in advance", schedule.AdvanceBookingDays),
		})
	}

	blocked, err := models.IsDateBlocked(db.DB, input.ProviderID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check blocked dates",
			Error:   err.Error(),
		})
	}
	if blocked {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{Field: "preferred_date", Reason: "service center is closed on this date"})
	}

	// Normalize the slot against the generated set so the stored value always
	// carries its end time.
	normalizedSlot := ""
	for _, slot := range schedule.SlotsForDate(date) {
		if min, err := utils.ParseClock(slot.StartTime); err == nil && min == startMin {
			normalizedSlot = slot.StartTime + "-" + slot.EndTime
			break
		}
	}
	if normalizedSlot == "" {
		return utils.Fail(c, "Invalid booking", &utils.ValidationError{
			Field:  "preferred_time_slot",
			Reason: "slot is outside the service center's working hours",
		})
	}

	booking := models.Booking{
		OwnerID:           userID,
		ProviderID:        input.ProviderID,
		Vehicle:           input.Vehicle,
		Services:          models.ServiceList(input.Services),
		PreferredDate:     date,
		PreferredTimeSlot: normalizedSlot,
		ContactPhone:      input.ContactPhone,
		ContactEmail:      input.ContactEmail,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		taken, err := models.ActiveBookingExists(tx, input.ProviderID, date, normalizedSlot)
		if err != nil {
			return err
		}
		if taken {
			return &utils.ConflictError{Resource: "time slot", Reason: "already booked, pick another slot"}
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		// A racing create slips past the probe and trips the unique index.
		err = models.ConflictOnDuplicate(err, "time slot", "already booked, pick another slot")
		return utils.Fail(c, "Failed to create booking", err)
	}

	redis.InvalidateAvailability(input.ProviderID)
	notifyBookingCreated(&booking, &provider)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// CancelBooking cancels the owner's booking. Only pending and confirmed
// bookings are cancellable by the owner.
func CancelBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		Reason string `json:"reason"`
	}
	c.BodyParser(&input) // reason is optional, ignore parse errors on empty bodies

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Booking not found", &utils.NotFoundError{Resource: "booking"})
	}
	if booking.OwnerID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}
	if !booking.CancellableByOwner() {
		return utils.Fail(c, "Cannot cancel booking", &utils.StateError{
			Current:   string(booking.Status),
			Attempted: "cancel",
		})
	}

	if input.Reason != "" {
		booking.Notes = input.Reason
	}
	if err := booking.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return utils.Fail(c, "Cannot cancel booking", err)
	}

	redis.InvalidateAvailability(booking.ProviderID)
	notifyBookingCancelled(&booking, input.Reason)

	return c.JSON(booking)
}

// GetMyBookings lists the owner's bookings, newest first.
func GetMyBookings(c *fiber.Ctx) error {
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

	query := db.DB.Preload("Provider").Where("owner_id = ?", userID)
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
			Message: "Failed to fetch bookings",
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

// GetBooking returns one booking, visible to its owner or its provider.
func GetBooking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Provider").Preload("Owner").First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Booking not found", &utils.NotFoundError{Resource: "booking"})
	}
	if booking.OwnerID != userID && booking.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}
	return c.JSON(booking)
}

func notifyBookingCreated(booking *models.Booking, provider *models.User) {
	var customer models.User
	if err := db.DB.First(&customer, booking.OwnerID).Error; err != nil {
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your service booking has been received and is awaiting confirmation.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Service Center:</strong> %s</li>
			<li><strong>Vehicle:</strong> %s %s (%s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
		</ul>
		<p>Thank you for choosing AutoConnect!</p>
	`, customer.Name, booking.BookingRef, provider.Name,
		booking.Vehicle.Make, booking.Vehicle.Model, booking.Vehicle.RegistrationNumber,
		booking.PreferredDate.Format(utils.DateLayout), booking.PreferredTimeSlot)
	utils.NotifyEmail(customer.Email, "Booking Received", body)

	body = fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request.</p>
		<ul>
			<li><strong>Reference:</strong> %s</li>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Vehicle:</strong> %s %s (%s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
		</ul>
	`, provider.Name, booking.BookingRef, customer.Name,
		booking.Vehicle.Make, booking.Vehicle.Model, booking.Vehicle.RegistrationNumber,
		booking.PreferredDate.Format(utils.DateLayout), booking.PreferredTimeSlot)
	utils.NotifyEmail(provider.Email, "New Booking Request", body)
}

func notifyBookingCancelled(booking *models.Booking, reason string) {
	var provider models.User
	if err := db.DB.First(&provider, booking.ProviderID).Error; err != nil {
		return
	}
	if reason == "" {
		reason = "not given"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Booking %s on %s (%s) was cancelled by the customer.</p>
		<p>Reason: %s</p>
	`, provider.Name, booking.BookingRef,
		booking.PreferredDate.Format(utils.DateLayout), booking.PreferredTimeSlot, reason)
	utils.NotifyEmail(provider.Email, "Booking Cancelled", body)
}
