// Package workday holds the calendar arithmetic shared by leave,
// attendance, and medical-leave bookkeeping. Business days are Monday
// through Friday; public holidays are not considered.
package workday

import "time"

func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsSaturday exists separately because attendance tags worked Saturdays
// for the monthly statistics.
func IsSaturday(d time.Time) bool {
	return d.Weekday() == time.Saturday
}

// BusinessDaysBetween counts Mon-Fri dates in the closed interval
// [start, end]. Returns 0 when end precedes start.
func BusinessDaysBetween(start, end time.Time) int {
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			days++
		}
	}
	return days
}

// CalendarDaysBetween is the inclusive day count. The result is zero or
// negative when end precedes start; callers validate ordering first.
func CalendarDaysBetween(start, end time.Time) int {
	start = truncate(start)
	end = truncate(end)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
