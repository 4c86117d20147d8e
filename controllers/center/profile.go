package center

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

// GetCenterProfile returns a service center's public profile, including its
// aggregate rating.
func GetCenterProfile(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("providerID")
	if err != nil || providerID <= 0 {
		return utils.Fail(c, "Invalid provider ID", &utils.ValidationError{Field: "providerID", Reason: "must be a positive integer"})
	}

	var profile models.CenterProfile
	if err := db.DB.Where("provider_id = ?", providerID).First(&profile).Error; err != nil {
		return utils.Fail(c, "Profile not found", &utils.NotFoundError{Resource: "center profile"})
	}
	return c.JSON(profile)
}

// UpsertCenterProfile creates or updates the authenticated center's profile.
// The aggregate rating fields are owned by the feedback path and never taken
// from the request.
func UpsertCenterProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	input := new(models.CenterProfile)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var profile models.CenterProfile
	err := db.DB.Where("provider_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.CenterProfile{ProviderID: userID}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch profile",
			Error:   err.Error(),
		})
	}

	profile.BusinessName = input.BusinessName
	profile.Description = input.Description
	profile.Address = input.Address
	profile.City = input.City
	profile.PhoneNumber = input.PhoneNumber
	profile.Email = input.Email
	profile.Website = input.Website

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(profile)
}
