package utils

import (
	"testing"
)

func daySlots(t *testing.T) []Slot {
	t.Helper()
	// 09:00-10:00, 10:00-11:00, 11:00-12:00
	return GenerateDaySlots("2026-09-07", 540, 720, 60, 0, nil, nil)
}

func TestTagSlots_AllAvailable(t *testing.T) {
	tagged := TagSlots(daySlots(t), nil, false, 0)
	if len(tagged) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(tagged))
	}
	for _, slot := range tagged {
		if slot.Status != SlotAvailable {
			t.Fatalf("slot %s tagged %s, want AVAILABLE", slot.StartTime, slot.Status)
		}
	}
}

func TestTagSlots_BookedByPlainStart(t *testing.T) {
	booked := BookedStarts([]string{"10:00"})
	tagged := TagSlots(daySlots(t), booked, false, 0)
	if tagged[1].Status != SlotBooked {
		t.Fatalf("10:00 tagged %s, want BOOKED", tagged[1].Status)
	}
	if tagged[0].Status != SlotAvailable || tagged[2].Status != SlotAvailable {
		t.Fatalf("neighboring slots mis-tagged: %+v", tagged)
	}
}

func TestTagSlots_BookedByRangeSlot(t *testing.T) {
	// Stored bookings may carry the full "HH:MM-HH:MM" form.
	booked := BookedStarts([]string{"11:00-12:00"})
	tagged := TagSlots(daySlots(t), booked, false, 0)
	if tagged[2].Status != SlotBooked {
		t.Fatalf("11:00 tagged %s, want BOOKED", tagged[2].Status)
	}
}

func TestTagSlots_PastOnToday(t *testing.T) {
	// now = 10:30: the 09:00 and 10:00 slots have started, 11:00 has not.
	tagged := TagSlots(daySlots(t), nil, true, 630)
	if tagged[0].Status != SlotPast || tagged[1].Status != SlotPast {
		t.Fatalf("elapsed slots not tagged PAST: %+v", tagged)
	}
	if tagged[2].Status != SlotAvailable {
		t.Fatalf("11:00 tagged %s, want AVAILABLE", tagged[2].Status)
	}
}

func TestTagSlots_NotTodayIgnoresClock(t *testing.T) {
	tagged := TagSlots(daySlots(t), nil, false, 1439)
	for _, slot := range tagged {
		if slot.Status == SlotPast {
			t.Fatalf("PAST tag applied on a future date: %+v", slot)
		}
	}
}

func TestTagSlots_BookedWinsOverPast(t *testing.T) {
	booked := BookedStarts([]string{"09:00-10:00"})
	tagged := TagSlots(daySlots(t), booked, true, 1439)
	if tagged[0].Status != SlotBooked {
		t.Fatalf("occupied elapsed slot tagged %s, want BOOKED", tagged[0].Status)
	}
}

func TestBookedStarts_IgnoresGarbage(t *testing.T) {
	booked := BookedStarts([]string{"10:00", "garbage", ""})
	if len(booked) != 1 {
		t.Fatalf("expected 1 parsed start, got %d", len(booked))
	}
}
