package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/redis"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

// GetSchedule returns a provider's weekly template, or the system default
// when none has been set. The default is never persisted.
func GetSchedule(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("providerID")
	if err != nil || providerID <= 0 {
		return utils.Fail(c, "Invalid provider ID", &utils.ValidationError{Field: "providerID", Reason: "must be a positive integer"})
	}

	schedule, err := models.ScheduleForProvider(db.DB, uint(providerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}
	return c.JSON(schedule)
}

// SetSchedule replaces the authenticated center's weekly template wholesale.
func SetSchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	schedule := new(models.WeeklySchedule)
	if err := c.BodyParser(schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	schedule.ID = 0
	schedule.ProviderID = userID
	for i := range schedule.Days {
		schedule.Days[i].ID = 0
		schedule.Days[i].ScheduleID = 0
	}

	if err := schedule.Validate(); err != nil {
		return utils.Fail(c, "Invalid schedule", err)
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.WeeklySchedule
		result := tx.Where("provider_id = ?", userID).First(&existing)
		if result.Error == nil {
			// No partial merge: drop the old template and its day rows.
			if err := tx.Unscoped().Where("schedule_id = ?", existing.ID).Delete(&models.DaySchedule{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		return tx.Create(schedule).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save schedule",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(userID)
	return c.JSON(schedule)
}

// BlockDate adds a calendar date to the center's blocked set. Idempotent.
func BlockDate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return utils.Fail(c, "Invalid date", &utils.ValidationError{Field: "date", Reason: err.Error()})
	}

	blocked := models.BlockedDate{
		ProviderID: userID,
		Date:       date,
		Reason:     input.Reason,
	}

	var existing models.BlockedDate
	if db.DB.Where("provider_id = ? AND date = ?", userID, date).First(&existing).RowsAffected > 0 {
		return c.JSON(existing)
	}
	if err := db.DB.Create(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to block date",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(userID)
	return c.Status(fiber.StatusCreated).JSON(blocked)
}

// UnblockDate removes a date from the blocked set. Idempotent.
func UnblockDate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	date, err := utils.ParseDate(c.Params("date"))
	if err != nil {
		return utils.Fail(c, "Invalid date", &utils.ValidationError{Field: "date", Reason: err.Error()})
	}

	if err := db.DB.Where("provider_id = ? AND date = ?", userID, date).Delete(&models.BlockedDate{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to unblock date",
			Error:   err.Error(),
		})
	}

	redis.InvalidateAvailability(userID)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBlockedDates lists the center's blocked dates.
func GetBlockedDates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var blocked []models.BlockedDate
	if err := db.DB.Where("provider_id = ?", userID).Order("date asc").Find(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch blocked dates",
			Error:   err.Error(),
		})
	}
	return c.JSON(blocked)
}
