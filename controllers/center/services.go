package center

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

// ListOfferings returns the services a center advertises. Public.
func ListOfferings(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("providerID")
	if err != nil || providerID <= 0 {
		return utils.Fail(c, "Invalid provider ID", &utils.ValidationError{Field: "providerID", Reason: "must be a positive integer"})
	}

	var offerings []models.ServiceOffering
	if err := db.DB.Where("provider_id = ?", providerID).Order("name asc").Find(&offerings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}
	return c.JSON(offerings)
}

// CreateOffering adds a service to the authenticated center's catalog.
func CreateOffering(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	offering := new(models.ServiceOffering)
	if err := c.BodyParser(offering); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if offering.Name == "" {
		return utils.Fail(c, "Invalid service", &utils.ValidationError{Field: "name", Reason: "required"})
	}
	offering.ID = 0
	offering.ProviderID = userID

	if err := db.DB.Create(offering).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(offering)
}

// UpdateOffering edits one of the center's services.
func UpdateOffering(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var offering models.ServiceOffering
	if err := db.DB.First(&offering, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Service not found", &utils.NotFoundError{Resource: "service"})
	}
	if offering.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}

	var input models.ServiceOffering
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name != "" {
		offering.Name = input.Name
	}
	offering.Description = input.Description
	offering.BasePrice = input.BasePrice
	offering.EstimatedDuration = input.EstimatedDuration

	if err := db.DB.Save(&offering).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update service",
			Error:   err.Error(),
		})
	}
	return c.JSON(offering)
}

// DeleteOffering removes a service from the catalog. Bookings keep their
// snapshot of service names, so history is unaffected.
func DeleteOffering(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var offering models.ServiceOffering
	if err := db.DB.First(&offering, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Service not found", &utils.NotFoundError{Resource: "service"})
	}
	if offering.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}

	if err := db.DB.Delete(&offering).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
