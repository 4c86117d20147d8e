package center

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

type reportPartInput struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type reportServiceInput struct {
	ServiceName string            `json:"service_name"`
	Description string            `json:"description"`
	PartsUsed   []reportPartInput `json:"parts_used"`
	LaborHours  float64           `json:"labor_hours"`
	LaborRate   float64           `json:"labor_rate"`
	LaborCost   float64           `json:"labor_cost"`
	ServiceCost float64           `json:"service_cost"`
}

type reportWorkInput struct {
	Description     string  `json:"description"`
	Cost            float64 `json:"cost"`
	ApprovedByOwner bool    `json:"approved_by_owner"`
}

type submitReportInput struct {
	TechnicianName    string               `json:"technician_name"`
	WorkStartTime     time.Time            `json:"work_start_time"`
	WorkEndTime       time.Time            `json:"work_end_time"`
	CompletedServices []reportServiceInput `json:"completed_services"`
	AdditionalWork    []reportWorkInput    `json:"additional_work"`
	Taxes             float64              `json:"taxes"`
	Discount          float64              `json:"discount"`
}

// SubmitCompletionReport stores the itemized completion report and finalizes
// the booking: the computed final total becomes the booking's billed cost and
// the booking transitions to completed. This is the only path into completed.
// At most one report per booking; a second submission conflicts.
func SubmitCompletionReport(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input submitReportInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if len(input.CompletedServices) == 0 {
		return utils.Fail(c, "Invalid report", &utils.ValidationError{Field: "completed_services", Reason: "at least one completed service is required"})
	}

	var booking models.Booking
	if err := db.DB.Preload("Owner").First(&booking, c.Params("id")).Error; err != nil {
		return utils.Fail(c, "Booking not found", &utils.NotFoundError{Resource: "booking"})
	}
	if booking.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}
	if booking.Status != models.StatusInProgress {
		return utils.Fail(c, "Cannot submit report", &utils.StateError{
			Current:   string(booking.Status),
			Attempted: "complete",
		})
	}

	exists, err := models.ReportExists(db.DB, booking.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing reports",
			Error:   err.Error(),
		})
	}
	if exists {
		return utils.Fail(c, "Report already submitted", &utils.ConflictError{
			Resource: "service report",
			Reason:   "a report was already submitted for this booking",
		})
	}

	report := models.ServiceReport{
		ReportNumber:   "SR-" + uuid.NewString(),
		BookingID:      booking.ID,
		TechnicianName: input.TechnicianName,
		WorkStartTime:  input.WorkStartTime,
		WorkEndTime:    input.WorkEndTime,
		Taxes:          input.Taxes,
		Discount:       input.Discount,
	}
	for _, svc := range input.CompletedServices {
		completed := models.CompletedService{
			ServiceName: svc.ServiceName,
			Description: svc.Description,
			LaborHours:  svc.LaborHours,
			LaborRate:   svc.LaborRate,
			LaborCost:   svc.LaborCost,
			ServiceCost: svc.ServiceCost,
		}
		for _, part := range svc.PartsUsed {
			completed.PartsUsed = append(completed.PartsUsed, models.PartUsed{
				Name:       part.Name,
				Quantity:   part.Quantity,
				UnitPrice:  part.UnitPrice,
				TotalPrice: part.TotalPrice,
			})
		}
		report.CompletedServices = append(report.CompletedServices, completed)
	}
	for _, work := range input.AdditionalWork {
		report.AdditionalWork = append(report.AdditionalWork, models.AdditionalWork{
			Description:     work.Description,
			Cost:            work.Cost,
			ApprovedByOwner: work.ApprovedByOwner,
		})
	}
	report.ComputeTotals()

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		booking.FinalCost = report.FinalTotal
		return booking.UpdateStatus(tx, models.StatusCompleted)
	})
	if err != nil {
		err = models.ConflictOnDuplicate(err, "service report", "a report was already submitted for this booking")
		return utils.Fail(c, "Failed to submit report", err)
	}

	notifyReportCompleted(&booking, &report)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"report":  report,
		"booking": booking,
	})
}

// GetReport returns the completion report for a booking, visible to its
// owner or its provider.
func GetReport(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var report models.ServiceReport
	err := db.DB.Preload("CompletedServices.PartsUsed").
		Preload("AdditionalWork").
		Preload("Booking").
		Where("booking_id = ?", c.Params("id")).
		First(&report).Error
	if err != nil {
		return utils.Fail(c, "Report not found", &utils.NotFoundError{Resource: "service report"})
	}
	if report.Booking.OwnerID != userID && report.Booking.ProviderID != userID {
		return utils.Fail(c, "Access denied", &utils.AuthorizationError{Reason: "not allowed"})
	}
	return c.JSON(report)
}

func notifyReportCompleted(booking *models.Booking, report *models.ServiceReport) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your vehicle service is complete.</p>
		<p><strong>Cost breakdown:</strong></p>
		<ul>
			<li><strong>Parts:</strong> %.2f</li>
			<li><strong>Labor:</strong> %.2f</li>
			<li><strong>Services:</strong> %.2f</li>
			<li><strong>Additional Work:</strong> %.2f</li>
			<li><strong>Taxes:</strong> %.2f</li>
			<li><strong>Discount:</strong> -%.2f</li>
			<li><strong>Total:</strong> %.2f</li>
		</ul>
		<p>Report number: %s</p>
	`, booking.Owner.Name,
		report.PartsTotal, report.LaborTotal, report.ServicesTotal,
		report.AdditionalWorkTotal, report.Taxes, report.Discount, report.FinalTotal,
		report.ReportNumber)
	utils.NotifyEmail(booking.Owner.Email, "Service Completed", body)
}
