package dateutil

import (
	"fmt"
	"time"
)

const (
	// KeyLayout is the layout used for map keys and wire formats
	KeyLayout = "2006-01-02"

	// DisplayLayout is the layout used for receipt lines
	DisplayLayout = "Mon 02/01/2006"
)

// StartOfDay returns the calendar day of the given time as midnight UTC.
// Dates are treated as timezone-less days, so the wall-clock date of the
// input location is kept and the location is dropped.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsWeekend returns true if the date is Friday or Saturday (Israeli weekend)
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Friday || weekday == time.Saturday
}

// IsWeekday returns true if the date is Sunday-Thursday
func IsWeekday(date time.Time) bool {
	return !IsWeekend(date)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// Normalize returns the two dates as calendar days in ascending order.
// An inverted selection is swapped.
func Normalize(a, b time.Time) (time.Time, time.Time) {
	a, b = StartOfDay(a), StartOfDay(b)
	if a.After(b) {
		return b, a
	}
	return a, b
}

// DaysBetween returns the number of calendar days in [start, end], or 0 if
// start is after end
func DaysBetween(start, end time.Time) int {
	start, end = StartOfDay(start), StartOfDay(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// EachDay returns every calendar day from start to end inclusive
func EachDay(start, end time.Time) []time.Time {
	n := DaysBetween(start, end)
	days := make([]time.Time, 0, n)
	current := StartOfDay(start)
	for i := 0; i < n; i++ {
		days = append(days, current)
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// YearsBetween returns every Gregorian year touched by [start, end]
func YearsBetween(start, end time.Time) []int {
	start, end = Normalize(start, end)
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// FormatKey formats a date as YYYY-MM-DD
func FormatKey(date time.Time) string {
	return date.Format(KeyLayout)
}

// ParseDate parses a calendar day in the formats accepted from users
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		KeyLayout,
		"02/01/2006",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
