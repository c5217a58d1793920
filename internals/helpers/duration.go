package helper

import (
	"fmt"
	"time"
)

// FormatDurationHM renders a duration as "3h 25m". Zero or negative
// durations render as "0h 0m" so empty aggregates never error out.
func FormatDurationHM(d time.Duration) string {
	if d <= 0 {
		return "0h 0m"
	}
	total := int(d.Seconds())
	hours := total / 3600
	mins := (total % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatDurationClock renders a duration as "HH:MM:SS" (dashboard
// avgVisitDuration shape).
func FormatDurationClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatHourLabel converts a 24-hour clock hour into the 12-hour
// AM/PM label the dashboards display ("12 AM", "9 AM", "12 PM", "3 PM").
func FormatHourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}
