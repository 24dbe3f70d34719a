package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		daysAhead int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "seven days ahead from midday",
			now:       time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
			daysAhead: 7,
			wantStart: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "late evening does not drift into the next day",
			now:       time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC),
			daysAhead: 7,
			wantStart: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "zero days ahead targets today",
			now:       time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
			daysAhead: 0,
			wantStart: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "window crosses a month boundary",
			now:       time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC),
			daysAhead: 5,
			wantStart: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ReminderWindow(tt.now, tt.daysAhead)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestReminderWindowHalfOpenBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	start, end := ReminderWindow(now, 7)

	lowerBoundary := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	upperBoundary := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	// A job exactly at the lower boundary is inside the window; a job
	// exactly at the upper boundary belongs to the next day.
	assert.False(t, lowerBoundary.Before(start))
	assert.True(t, lowerBoundary.Before(end))
	assert.False(t, upperBoundary.Before(end))
}

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2025, 3, 15, 18, 45, 12, 999, time.UTC)
	got := BeginningOfDay(in)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 17, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(start, end))
}
