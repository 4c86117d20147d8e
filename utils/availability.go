package utils

// SlotState tags a generated slot in an availability projection.
type SlotState string

const (
	SlotAvailable SlotState = "AVAILABLE"
	SlotBooked    SlotState = "BOOKED"
	SlotPast      SlotState = "PAST"
)

// SlotStatus is a generated slot plus its availability tag.
type SlotStatus struct {
	Slot
	Status SlotState `json:"status"`
}

// BookedStarts collects the start minutes of stored booking slots. Stored
// slots may be "HH:MM" or "HH:MM-HH:MM"; entries that do not parse are
// ignored rather than failing the whole projection.
func BookedStarts(bookedSlots []string) map[int]struct{} {
	starts := make(map[int]struct{}, len(bookedSlots))
	for _, s := range bookedSlots {
		if min, err := SlotStartMinutes(s); err == nil {
			starts[min] = struct{}{}
		}
	}
	return starts
}

// TagSlots classifies candidate slots against existing active bookings.
// A slot whose start matches an active booking is BOOKED. On the current day
// (isToday), an unbooked slot whose start is at or before nowMin is PAST.
// Everything else is AVAILABLE. BOOKED takes precedence over PAST so a client
// can always tell an occupied slot from a merely elapsed one.
func TagSlots(slots []Slot, booked map[int]struct{}, isToday bool, nowMin int) []SlotStatus {
	tagged := make([]SlotStatus, 0, len(slots))
	for _, slot := range slots {
		startMin, err := ParseClock(slot.StartTime)
		if err != nil {
			continue
		}

		status := SlotAvailable
		if _, taken := booked[startMin]; taken {
			status = SlotBooked
		} else if isToday && startMin <= nowMin {
			status = SlotPast
		}

		tagged = append(tagged, SlotStatus{Slot: slot, Status: status})
	}
	return tagged
}
