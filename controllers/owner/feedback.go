package owner

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

// SubmitFeedback records the owner's rating for a completed booking and then
// recomputes the provider's stored aggregate rating.
func SubmitFeedback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return utils.Fail(c, "Invalid feedback", &utils.ValidationError{Field: "rating", Reason: "must be between 1 and 5"})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Booking not found", &utils.NotFoundError{Resource: "booking"})
	}
	if booking.OwnerID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}
	if booking.Status != models.StatusCompleted {
		return utils.Fail(c, "Cannot submit feedback", &utils.StateError{
			Current:   string(booking.Status),
			Attempted: "rate",
		})
	}

	feedback := models.Feedback{
		BookingID:  booking.ID,
		OwnerID:    userID,
		ProviderID: booking.ProviderID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	exists, err := feedback.HasExistingFeedback(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing feedback",
			Error:   err.Error(),
		})
	}
	if exists {
		return utils.Fail(c, "Already rated", &utils.ConflictError{
			Resource: "feedback",
			Reason:   "this booking has already been rated",
		})
	}

	if err := db.DB.Create(&feedback).Error; err != nil {
		err = models.ConflictOnDuplicate(err, "feedback", "this booking has already been rated")
		return utils.Fail(c, "Failed to save feedback", err)
	}

	// The stored feedback is authoritative; a failed recomputation is logged
	// and corrected by the next submission.
	avgRating, ratingCount, err := models.RecomputeProviderRating(db.DB, booking.ProviderID)
	if err != nil {
		log.Printf("Failed to recompute rating for provider %d: %v", booking.ProviderID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"feedback":        feedback,
		"provider_rating": avgRating,
		"rating_count":    ratingCount,
	})
}
