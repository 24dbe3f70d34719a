// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ReminderWindow computes the half-open interval [start, end) covering the
// calendar day daysAhead days after now. Day arithmetic is done on the UTC
// calendar so the window never drifts with the time of day.
func ReminderWindow(now time.Time, daysAhead int) (start, end time.Time) {
	start = BeginningOfDay(now.UTC()).AddDate(0, 0, daysAhead)
	end = start.AddDate(0, 0, 1)
	return start, end
}
