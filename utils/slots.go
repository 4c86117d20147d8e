package utils

// Slot is one bookable interval on a given date. Times are "HH:MM".
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GenerateDaySlots produces the ordered candidate slots for one day.
//
// Starting at startMin, it emits [t, t+duration) repeatedly. A candidate that
// overlaps the optional break window is not emitted; instead the cursor jumps
// to the end of the break. Otherwise the cursor advances by duration+buffer.
// Generation stops once a candidate would end after endMin. All values are
// minutes since midnight.
func GenerateDaySlots(date string, startMin, endMin, durationMin, bufferMin int, breakStartMin, breakEndMin *int) []Slot {
	slots := []Slot{}
	if durationMin <= 0 {
		return slots
	}

	hasBreak := breakStartMin != nil && breakEndMin != nil && *breakStartMin < *breakEndMin

	t := startMin
	for t+durationMin <= endMin {
		slotEnd := t + durationMin

		if hasBreak && t < *breakEndMin && slotEnd > *breakStartMin {
			// Candidate overlaps the break window, resume after it.
			t = *breakEndMin
			continue
		}

		slots = append(slots, Slot{
			Date:      date,
			StartTime: FormatClock(t),
			EndTime:   FormatClock(slotEnd),
		})
		t = slotEnd + bufferMin
	}

	return slots
}
