package helpers

import (
	"testing"
	"time"
)

func TestStartOfWeekAlwaysMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "Monday maps to itself",
			in:   time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Wednesday maps back to Monday",
			in:   time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Sunday belongs to the preceding Monday",
			in:   time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			in:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("StartOfWeek(%v) landed on %v", tt.in, got.Weekday())
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	// 2026 is not a leap year; February ends on the 28th.
	if end.Day() != 28 || end.Month() != time.February {
		t.Errorf("end = %v", end)
	}
	if !end.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end %v spills into March", end)
	}
}

func TestPrevMonthBounds(t *testing.T) {
	start, end := PrevMonthBounds(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	if start.Month() != time.December || start.Year() != 2025 {
		t.Errorf("start = %v, want December 2025", start)
	}
	if end.Month() != time.December || end.Day() != 31 {
		t.Errorf("end = %v, want Dec 31", end)
	}
}
