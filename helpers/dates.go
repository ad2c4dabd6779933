// Package helpers provides small shared utilities.
package helpers

import "time"

// StartOfWeek returns the Monday 00:00:00 (UTC) of the week containing t.
// Weeks start on Monday everywhere in this system; priorities are keyed by
// this value.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// MonthBounds returns the first instant of t's month and the last instant of
// its final day.
func MonthBounds(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// PrevMonthBounds returns MonthBounds for the month before t's.
func PrevMonthBounds(t time.Time) (start, end time.Time) {
	firstOfMonth := time.Date(t.UTC().Year(), t.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthBounds(firstOfMonth.AddDate(0, 0, -1))
}
