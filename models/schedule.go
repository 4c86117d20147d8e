package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return dayNames[d]
}

// Slot settings bounds enforced by Validate.
const (
	MinSlotDuration       = 15
	MaxSlotDuration       = 240
	MinBufferTime         = 0
	MaxBufferTime         = 60
	MinAdvanceBookingDays = 1
	MaxAdvanceBookingDays = 90
)

// WeeklySchedule is a provider's recurring weekly template: one row per
// provider, seven DaySchedule rows, slot settings inline.
type WeeklySchedule struct {
	gorm.Model
	ProviderID uint `json:"provider_id" gorm:"uniqueIndex"`
	Provider   User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`

	SlotDuration       int `json:"slot_duration" gorm:"default:60"`
	BufferTime         int `json:"buffer_time" gorm:"default:15"`
	AdvanceBookingDays int `json:"advance_booking_days" gorm:"default:30"`

	Days []DaySchedule `json:"days" gorm:"foreignKey:ScheduleID"`
}

type DaySchedule struct {
	gorm.Model
	ScheduleID uint      `json:"schedule_id" gorm:"index"`
	DayOfWeek  DayOfWeek `json:"day_of_week"`
	IsOpen     bool      `json:"is_open"`
	StartTime  string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime    string    `json:"end_time"`   // Format "HH:MM" in 24h
	BreakStart *string   `json:"break_start"`
	BreakEnd   *string   `json:"break_end"`
}

// BlockedDate excludes one calendar date from slot generation regardless of
// the weekday template.
type BlockedDate struct {
	gorm.Model
	ProviderID uint      `json:"provider_id" gorm:"uniqueIndex:idx_provider_blocked_date"`
	Date       time.Time `json:"date" gorm:"type:date;uniqueIndex:idx_provider_blocked_date"`
	Reason     string    `json:"reason"`
}

// DefaultWeeklySchedule is the system template used when a provider has not
// set one. It is returned in memory and never persisted.
func DefaultWeeklySchedule(providerID uint) WeeklySchedule {
	days := make([]DaySchedule, 0, 7)
	for d := Sunday; d <= Saturday; d++ {
		day := DaySchedule{DayOfWeek: d}
		switch {
		case d == Sunday:
			day.IsOpen = false
		case d == Saturday:
			day.IsOpen = true
			day.StartTime = "09:00"
			day.EndTime = "15:00"
		default:
			day.IsOpen = true
			day.StartTime = "08:30"
			day.EndTime = "18:00"
		}
		days = append(days, day)
	}
	return WeeklySchedule{
		ProviderID:         providerID,
		SlotDuration:       60,
		BufferTime:         15,
		AdvanceBookingDays: 30,
		Days:               days,
	}
}

// Validate checks slot settings and every open day's window. The returned
// ValidationError names the offending day and field.
func (s *WeeklySchedule) Validate() error {
	if s.SlotDuration < MinSlotDuration || s.SlotDuration > MaxSlotDuration {
		return &utils.ValidationError{
			Field:  "slot_duration",
			Reason: fmt.Sprintf("must be between %d and %d minutes", MinSlotDuration, MaxSlotDuration),
		}
	}
	if s.BufferTime < MinBufferTime || s.BufferTime > MaxBufferTime {
		return &utils.ValidationError{
			Field:  "buffer_time",
			Reason: fmt.Sprintf("must be between %d and %d minutes", MinBufferTime, MaxBufferTime),
		}
	}
	if s.AdvanceBookingDays < MinAdvanceBookingDays || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return &utils.ValidationError{
			Field:  "advance_booking_days",
			Reason: fmt.Sprintf("must be between %d and %d days", MinAdvanceBookingDays, MaxAdvanceBookingDays),
		}
	}

	seen := make(map[DayOfWeek]bool, 7)
	for _, day := range s.Days {
		if day.DayOfWeek < Sunday || day.DayOfWeek > Saturday {
			return &utils.ValidationError{Field: "days", Reason: fmt.Sprintf("unknown weekday %d", day.DayOfWeek)}
		}
		if seen[day.DayOfWeek] {
			return &utils.ValidationError{
				Field:  day.DayOfWeek.String(),
				Reason: "duplicate weekday entry",
			}
		}
		seen[day.DayOfWeek] = true

		if !day.IsOpen {
			continue
		}

		start, err := utils.ParseClock(day.StartTime)
		if err != nil {
			return &utils.ValidationError{Field: day.DayOfWeek.String() + ".start_time", Reason: err.Error()}
		}
		end, err := utils.ParseClock(day.EndTime)
		if err != nil {
			return &utils.ValidationError{Field: day.DayOfWeek.String() + ".end_time", Reason: err.Error()}
		}
		if start >= end {
			return &utils.ValidationError{
				Field:  day.DayOfWeek.String(),
				Reason: "start_time must be before end_time",
			}
		}

		if (day.BreakStart == nil) != (day.BreakEnd == nil) {
			return &utils.ValidationError{
				Field:  day.DayOfWeek.String(),
				Reason: "break_start and break_end must both be set or both be empty",
			}
		}
		if day.BreakStart != nil {
			bs, err := utils.ParseClock(*day.BreakStart)
			if err != nil {
				return &utils.ValidationError{Field: day.DayOfWeek.String() + ".break_start", Reason: err.Error()}
			}
			be, err := utils.ParseClock(*day.BreakEnd)
			if err != nil {
				return &utils.ValidationError{Field: day.DayOfWeek.String() + ".break_end", Reason: err.Error()}
			}
			if bs >= be {
				return &utils.ValidationError{
					Field:  day.DayOfWeek.String(),
					Reason: "break_start must be before break_end",
				}
			}
		}
	}
	return nil
}

// DayFor returns the template entry for a weekday, or nil when the template
// has no entry for it.
func (s *WeeklySchedule) DayFor(weekday time.Weekday) *DaySchedule {
	for i := range s.Days {
		if int(s.Days[i].DayOfWeek) == int(weekday) {
			return &s.Days[i]
		}
	}
	return nil
}

// SlotsForDate generates the candidate slots for one calendar date. A closed
// or missing weekday yields no slots; blocked-date filtering happens in the
// caller, which owns the query.
func (s *WeeklySchedule) SlotsForDate(date time.Time) []utils.Slot {
	day := s.DayFor(date.Weekday())
	if day == nil || !day.IsOpen {
		return []utils.Slot{}
	}

	start, err := utils.ParseClock(day.StartTime)
	if err != nil {
		return []utils.Slot{}
	}
	end, err := utils.ParseClock(day.EndTime)
	if err != nil {
		return []utils.Slot{}
	}

	var breakStart, breakEnd *int
	if day.BreakStart != nil && day.BreakEnd != nil {
		if bs, err := utils.ParseClock(*day.BreakStart); err == nil {
			if be, err := utils.ParseClock(*day.BreakEnd); err == nil {
				breakStart, breakEnd = &bs, &be
			}
		}
	}

	return utils.GenerateDaySlots(date.Format(utils.DateLayout), start, end, s.SlotDuration, s.BufferTime, breakStart, breakEnd)
}

// ScheduleForProvider loads the provider's template, falling back to the
// system default without persisting it.
func ScheduleForProvider(tx *gorm.DB, providerID uint) (WeeklySchedule, error) {
	var schedule WeeklySchedule
	err := tx.Preload("Days").Where("provider_id = ?", providerID).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultWeeklySchedule(providerID), nil
	}
	if err != nil {
		return WeeklySchedule{}, err
	}
	return schedule, nil
}

// IsDateBlocked checks the provider's blocked-date set.
func IsDateBlocked(tx *gorm.DB, providerID uint, date time.Time) (bool, error) {
	var count int64
	err := tx.Model(&BlockedDate{}).
		Where("provider_id = ? AND date = ?", providerID, date).
		Count(&count).Error
	return count > 0, err
}
