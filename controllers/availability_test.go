package controllers

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClampRange(t *testing.T) {
	today := day(2026, 9, 7)

	cases := []struct {
		name     string
		from, to time.Time
		advance  int
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name: "inside window untouched",
			from: day(2026, 9, 8), to: day(2026, 9, 10), advance: 30,
			wantFrom: day(2026, 9, 8), wantTo: day(2026, 9, 10),
		},
		{
			name: "past from clamps to today",
			from: day(2024, 1, 1), to: day(2026, 9, 10), advance: 30,
			wantFrom: today, wantTo: day(2026, 9, 10),
		},
		{
			name: "to clamps to horizon",
			from: day(2026, 9, 8), to: day(2027, 1, 1), advance: 30,
			wantFrom: day(2026, 9, 8), wantTo: day(2026, 10, 7),
		},
		{
			name: "both ends clamped",
			from: day(2020, 1, 1), to: day(2030, 1, 1), advance: 7,
			wantFrom: today, wantTo: day(2026, 9, 14),
		},
	}
	for _, tc := range cases {
		from, to := clampRange(tc.from, tc.to, today, tc.advance)
		if !from.Equal(tc.wantFrom) || !to.Equal(tc.wantTo) {
			t.Errorf("%s: got [%s, %s], want [%s, %s]", tc.name,
				from.Format("2006-01-02"), to.Format("2006-01-02"),
				tc.wantFrom.Format("2006-01-02"), tc.wantTo.Format("2006-01-02"))
		}
	}
}

func TestClampRange_FullyPastWindowCollapses(t *testing.T) {
	today := day(2026, 9, 7)
	from, to := clampRange(day(2024, 1, 1), day(2024, 1, 5), today, 30)
	if !to.Before(from) {
		t.Fatalf("expected collapsed range, got [%s, %s]", from, to)
	}
	// The projection loop iterates while !date.After(to), so a collapsed
	// range must yield zero days.
	count := 0
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		count++
	}
	if count != 0 {
		t.Fatalf("collapsed range produced %d days", count)
	}
}
