package utils

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"8:30", 0, true},
		{"08:30:00", 0, true},
		{"", 0, true},
		{"noon", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for min := 0; min < 24*60; min += 7 {
		parsed, err := ParseClock(FormatClock(min))
		if err != nil {
			t.Fatalf("round trip failed at %d: %v", min, err)
		}
		if parsed != min {
			t.Fatalf("round trip at %d gave %d", min, parsed)
		}
	}
}

func TestSlotStartMinutes(t *testing.T) {
	got, err := SlotStartMinutes("09:15")
	if err != nil || got != 555 {
		t.Fatalf("SlotStartMinutes(09:15) = %d, %v", got, err)
	}

	got, err = SlotStartMinutes("09:15-10:15")
	if err != nil || got != 555 {
		t.Fatalf("SlotStartMinutes(09:15-10:15) = %d, %v", got, err)
	}

	if _, err := SlotStartMinutes("9am"); err == nil {
		t.Fatal("expected error for malformed slot")
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Hour() != 0 || date.Minute() != 0 {
		t.Fatalf("expected midnight, got %s", date)
	}
	if _, err := ParseDate("01/09/2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
