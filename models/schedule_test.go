package models

import (
	"strings"
	"testing"
	"time"

	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

func validSchedule() WeeklySchedule {
	return DefaultWeeklySchedule(1)
}

func TestDefaultWeeklySchedule(t *testing.T) {
	s := DefaultWeeklySchedule(42)
	if s.ProviderID != 42 {
		t.Fatalf("provider = %d, want 42", s.ProviderID)
	}
	if s.SlotDuration != 60 || s.BufferTime != 15 || s.AdvanceBookingDays != 30 {
		t.Fatalf("unexpected slot settings: %+v", s)
	}
	if len(s.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(s.Days))
	}

	sunday := s.Days[0]
	if sunday.DayOfWeek != Sunday || sunday.IsOpen {
		t.Fatalf("sunday should be closed: %+v", sunday)
	}
	saturday := s.Days[6]
	if !saturday.IsOpen || saturday.StartTime != "09:00" || saturday.EndTime != "15:00" {
		t.Fatalf("unexpected saturday: %+v", saturday)
	}
	monday := s.Days[1]
	if !monday.IsOpen || monday.StartTime != "08:30" || monday.EndTime != "18:00" {
		t.Fatalf("unexpected monday: %+v", monday)
	}

	if err := s.Validate(); err != nil {
		t.Fatalf("default template must validate: %v", err)
	}
}

func TestValidate_SlotSettingsBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*WeeklySchedule)
		field  string
	}{
		{"duration too short", func(s *WeeklySchedule) { s.SlotDuration = 10 }, "slot_duration"},
		{"duration too long", func(s *WeeklySchedule) { s.SlotDuration = 300 }, "slot_duration"},
		{"buffer negative", func(s *WeeklySchedule) { s.BufferTime = -1 }, "buffer_time"},
		{"buffer too long", func(s *WeeklySchedule) { s.BufferTime = 90 }, "buffer_time"},
		{"advance zero", func(s *WeeklySchedule) { s.AdvanceBookingDays = 0 }, "advance_booking_days"},
		{"advance too far", func(s *WeeklySchedule) { s.AdvanceBookingDays = 120 }, "advance_booking_days"},
	}
	for _, tc := range cases {
		s := validSchedule()
		tc.mutate(&s)
		err := s.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		vErr, ok := err.(*utils.ValidationError)
		if !ok {
			t.Errorf("%s: expected *utils.ValidationError, got %T", tc.name, err)
			continue
		}
		if vErr.Field != tc.field {
			t.Errorf("%s: field = %q, want %q", tc.name, vErr.Field, tc.field)
		}
	}
}

func TestValidate_DayErrorsNameTheDay(t *testing.T) {
	s := validSchedule()
	s.Days[1].StartTime = "8:30" // monday, malformed
	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "monday") {
		t.Fatalf("error should name the day: %v", err)
	}

	s = validSchedule()
	s.Days[2].StartTime = "18:00"
	s.Days[2].EndTime = "08:00"
	err = s.Validate()
	if err == nil {
		t.Fatal("expected error for inverted window")
	}
	if !strings.Contains(err.Error(), "tuesday") {
		t.Fatalf("error should name the day: %v", err)
	}
}

func TestValidate_BreakWindow(t *testing.T) {
	bs, be := "12:00", "11:00"
	s := validSchedule()
	s.Days[1].BreakStart = &bs
	s.Days[1].BreakEnd = &be
	if s.Validate() == nil {
		t.Fatal("expected error for inverted break")
	}

	s = validSchedule()
	s.Days[1].BreakStart = &bs
	if s.Validate() == nil {
		t.Fatal("expected error for half-set break")
	}
}

func TestValidate_ClosedDaySkipsTimeChecks(t *testing.T) {
	s := validSchedule()
	s.Days[0].StartTime = "not a time" // sunday is closed
	if err := s.Validate(); err != nil {
		t.Fatalf("closed day times must not be validated: %v", err)
	}
}

func TestSlotsForDate_ClosedDay(t *testing.T) {
	s := validSchedule()
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if slots := s.SlotsForDate(sunday); len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestSlotsForDate_OpenDay(t *testing.T) {
	s := validSchedule()
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	slots := s.SlotsForDate(saturday)
	// 09:00-15:00, 60 min slots, 15 min buffer: 09:00, 10:15, 11:30, 12:45, 14:00
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d: %+v", len(slots), slots)
	}
	if slots[0].StartTime != "09:00" || slots[4].StartTime != "14:00" {
		t.Fatalf("unexpected slot boundaries: %+v", slots)
	}
	for _, slot := range slots {
		if slot.Date != "2026-09-05" {
			t.Fatalf("slot date = %q, want 2026-09-05", slot.Date)
		}
	}
}

func TestSlotsForDate_MissingDayEntry(t *testing.T) {
	s := validSchedule()
	s.Days = s.Days[:1] // only sunday remains
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	if slots := s.SlotsForDate(monday); len(slots) != 0 {
		t.Fatalf("expected no slots without a template entry, got %d", len(slots))
	}
}
