package cron

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

// StartCronJobs initializes and starts the cron scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Every evening, remind owners about tomorrow's bookings
	_, err := c.AddFunc("0 18 * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders checks for next-day bookings and sends reminders
func sendBookingReminders() {
	tomorrow := utils.Today().AddDate(0, 0, 1)

	var bookings []models.Booking
	err := db.DB.Preload("Owner").Preload("Provider").
		Where("preferred_date = ? AND status IN ?", tomorrow, models.ActiveStatuses).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		sendReminderEmail(&booking)
		log.Printf("Sent reminder for booking %s to %s", booking.BookingRef, booking.Owner.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) {
	subject := fmt.Sprintf("Reminder: Vehicle Service Tomorrow - %s", booking.BookingRef)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your vehicle service booking tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service Center:</strong> %s</li>
			<li><strong>Vehicle:</strong> %s %s (%s)</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time Slot:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>The AutoConnect Team</p>
	`, booking.Owner.Name, booking.Provider.Name,
		booking.Vehicle.Make, booking.Vehicle.Model, booking.Vehicle.RegistrationNumber,
		booking.PreferredDate.Format(utils.DateLayout),
		booking.PreferredTimeSlot,
		booking.Status)

	utils.NotifyEmail(booking.Owner.Email, subject, body)
}
