package utils

import (
	"testing"
)

func mustClock(t *testing.T, s string) int {
	t.Helper()
	min, err := ParseClock(s)
	if err != nil {
		t.Fatalf("bad clock %q: %v", s, err)
	}
	return min
}

func assertSlots(t *testing.T, got []Slot, want [][2]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].StartTime != w[0] || got[i].EndTime != w[1] {
			t.Fatalf("slot %d = %s-%s, want %s-%s", i, got[i].StartTime, got[i].EndTime, w[0], w[1])
		}
	}
}

func TestGenerateDaySlots_RejectsSlotPastClosing(t *testing.T) {
	// Open 08:00-10:00, 60 min slots, 15 min buffer. The second candidate
	// would run 09:15-10:15 and must not be emitted.
	slots := GenerateDaySlots("2026-09-07", mustClock(t, "08:00"), mustClock(t, "10:00"), 60, 15, nil, nil)
	assertSlots(t, slots, [][2]string{{"08:00", "09:00"}})
}

func TestGenerateDaySlots_BreakWindow(t *testing.T) {
	// Open 08:00-12:00 with break 10:00-10:30, 60 min slots, no buffer.
	// 10:00-11:00 overlaps the break and the cursor resumes at 10:30;
	// 11:30-12:30 exceeds closing.
	bs := mustClock(t, "10:00")
	be := mustClock(t, "10:30")
	slots := GenerateDaySlots("2026-09-07", mustClock(t, "08:00"), mustClock(t, "12:00"), 60, 0, &bs, &be)
	assertSlots(t, slots, [][2]string{
		{"08:00", "09:00"},
		{"09:00", "10:00"},
		{"10:30", "11:30"},
	})
}

func TestGenerateDaySlots_ZeroBufferBackToBack(t *testing.T) {
	slots := GenerateDaySlots("2026-09-07", mustClock(t, "09:00"), mustClock(t, "11:00"), 30, 0, nil, nil)
	assertSlots(t, slots, [][2]string{
		{"09:00", "09:30"},
		{"09:30", "10:00"},
		{"10:00", "10:30"},
		{"10:30", "11:00"},
	})
}

func TestGenerateDaySlots_DurationExceedsWindow(t *testing.T) {
	slots := GenerateDaySlots("2026-09-07", mustClock(t, "09:00"), mustClock(t, "10:00"), 90, 0, nil, nil)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %+v", slots)
	}
}

func TestGenerateDaySlots_Ordering(t *testing.T) {
	bs := mustClock(t, "12:00")
	be := mustClock(t, "13:00")
	slots := GenerateDaySlots("2026-09-07", mustClock(t, "08:30"), mustClock(t, "18:00"), 45, 10, &bs, &be)
	prev := -1
	for _, slot := range slots {
		start := mustClock(t, slot.StartTime)
		end := mustClock(t, slot.EndTime)
		if start <= prev {
			t.Fatalf("slots not strictly increasing at %s", slot.StartTime)
		}
		if end-start != 45 {
			t.Fatalf("slot %s-%s is not 45 minutes", slot.StartTime, slot.EndTime)
		}
		prev = start
	}
	// Non-overlap: each start must be at or after the previous end.
	for i := 1; i < len(slots); i++ {
		if mustClock(t, slots[i].StartTime) < mustClock(t, slots[i-1].EndTime) {
			t.Fatalf("slot %d overlaps previous: %+v", i, slots[i-1:i+1])
		}
	}
}

func TestGenerateDaySlots_Deterministic(t *testing.T) {
	a := GenerateDaySlots("2026-09-07", 510, 1080, 60, 15, nil, nil)
	b := GenerateDaySlots("2026-09-07", 510, 1080, 60, 15, nil, nil)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic slot %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
