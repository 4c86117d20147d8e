package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the API.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotStartMinutes extracts the start of a stored time slot. Slots are stored
// either as "HH:MM" or as "HH:MM-HH:MM".
func SlotStartMinutes(slot string) (int, error) {
	start := slot
	if i := strings.Index(slot, "-"); i >= 0 {
		start = slot[:i]
	}
	return ParseClock(strings.TrimSpace(start))
}

// ParseDate parses a calendar date and normalizes it to midnight UTC so that
// equality comparisons against stored dates are exact.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// MinutesOfDay returns how far into its day t is, in minutes.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
