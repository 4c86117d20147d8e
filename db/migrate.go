package db

import (
	"fmt"
	"log"

	"github.com/Dark-Zeus/auto-connect-sub001/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.CenterProfile{},
		&models.ServiceOffering{},
		&models.WeeklySchedule{},
		&models.DaySchedule{},
		&models.BlockedDate{},
		&models.Booking{},
		&models.Feedback{},
		&models.ServiceReport{},
		&models.CompletedService{},
		&models.PartUsed{},
		&models.AdditionalWork{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// AutoMigrate cannot express a partial unique index. This is the storage
	// guarantee behind the no-double-booking invariant: two concurrent creates
	// for the same (provider, date, slot) cannot both commit while active.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_active_booking_slot
		ON bookings (provider_id, preferred_date, preferred_time_slot)
		WHERE status IN ('pending', 'confirmed', 'in_progress') AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create active booking index: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
