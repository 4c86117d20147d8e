package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dark-Zeus/auto-connect-sub001/db"
	"github.com/Dark-Zeus/auto-connect-sub001/models"
	"github.com/Dark-Zeus/auto-connect-sub001/redis"
	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

const availabilityCacheTTL = 60 * time.Second

type dayAvailability struct {
	Date  string             `json:"date"`
	Slots []utils.SlotStatus `json:"slots"`
}

// GetAvailability projects a provider's bookable slots for a date or date
// range, each slot tagged AVAILABLE, BOOKED or PAST. Read-only; the create
// path re-validates, so a slot shown AVAILABLE here may still be rejected.
func GetAvailability(c *fiber.Ctx) error {
	providerID, err := c.ParamsInt("providerID")
	if err != nil || providerID <= 0 {
		return utils.Fail(c, "Invalid provider ID", &utils.ValidationError{Field: "providerID", Reason: "must be a positive integer"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return utils.Fail(c, "Invalid date range", err)
	}

	schedule, err := models.ScheduleForProvider(db.DB, uint(providerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}

	from, to = clampRange(from, to, utils.Today(), schedule.AdvanceBookingDays)

	days := []dayAvailability{}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day, err := resolveDay(&schedule, uint(providerID), date)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to resolve availability",
				Error:   err.Error(),
			})
		}
		days = append(days, day)
	}

	return c.JSON(fiber.Map{
		"provider_id": providerID,
		"from":        from.Format(utils.DateLayout),
		"to":          to.Format(utils.DateLayout),
		"days":        days,
	})
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	if single := c.Query("date"); single != "" {
		date, err := utils.ParseDate(single)
		if err != nil {
			return time.Time{}, time.Time{}, &utils.ValidationError{Field: "date", Reason: err.Error()}
		}
		return date, date, nil
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" {
		return time.Time{}, time.Time{}, &utils.ValidationError{Field: "date", Reason: "date or from/to query parameters required"}
	}
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, &utils.ValidationError{Field: "from", Reason: err.Error()}
	}
	to := from
	if toStr != "" {
		to, err = utils.ParseDate(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, &utils.ValidationError{Field: "to", Reason: err.Error()}
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, &utils.ValidationError{Field: "to", Reason: "must not be before from"}
	}
	return from, to, nil
}

// clampRange bounds a requested projection window to the bookable interval
// [today, today+advanceDays]. Days before today are all PAST and days beyond
// the horizon cannot be booked, so neither is worth a query. A window
// entirely outside the interval collapses to an empty range (from after to).
func clampRange(from, to, today time.Time, advanceDays int) (time.Time, time.Time) {
	if from.Before(today) {
		from = today
	}
	horizon := today.AddDate(0, 0, advanceDays)
	if to.After(horizon) {
		to = horizon
	}
	return from, to
}

// resolveDay builds (or reads from cache) one day's tagged slot projection.
func resolveDay(schedule *models.WeeklySchedule, providerID uint, date time.Time) (dayAvailability, error) {
	dateStr := date.Format(utils.DateLayout)

	cacheKey := redis.AvailabilityKey(providerID, dateStr)
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, cacheKey).Result(); err == nil {
			var day dayAvailability
			if json.Unmarshal([]byte(cached), &day) == nil {
				return day, nil
			}
		}
	}

	day := dayAvailability{Date: dateStr, Slots: []utils.SlotStatus{}}

	blocked, err := models.IsDateBlocked(db.DB, providerID, date)
	if err != nil {
		return day, err
	}
	if !blocked {
		slots := schedule.SlotsForDate(date)
		bookedSlots, err := models.ActiveSlotsForDate(db.DB, providerID, date)
		if err != nil {
			return day, err
		}

		now := time.Now().UTC()
		isToday := dateStr == now.Format(utils.DateLayout)
		day.Slots = utils.TagSlots(slots, utils.BookedStarts(bookedSlots), isToday, utils.MinutesOfDay(now))
	}

	if redis.Client != nil {
		if data, err := json.Marshal(day); err == nil {
			redis.Client.Set(redis.Ctx, cacheKey, data, availabilityCacheTTL)
		}
	}
	return day, nil
}
