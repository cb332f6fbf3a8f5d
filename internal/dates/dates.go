// Package dates provides the calendar helpers shared by every tracks
// component. Dates are stored and compared as local YYYY-MM-DD keys.
package dates

import (
	"fmt"
	"time"
)

// Layout is the fixed-width key format. Lexicographic order of keys is
// chronological order.
const Layout = "2006-01-02"

// Key formats t as YYYY-MM-DD in t's own location. Callers pass local
// instants; the instant is never converted to UTC first.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a date key as a civil date at midnight UTC. The result is
// only meant for day arithmetic, never for display in another zone.
func Parse(key string) (time.Time, error) {
	d, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", key, err)
	}
	return d, nil
}

// Valid reports whether key is a well-formed date key.
func Valid(key string) bool {
	_, err := time.Parse(Layout, key)
	return err == nil
}

// AddDays shifts a key by n calendar days.
func AddDays(key string, n int) (string, error) {
	d, err := Parse(key)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(Layout), nil
}

// DaysBetween returns the number of whole calendar days from one key to
// another (negative when to is before from).
func DaysBetween(from, to string) (int, error) {
	a, err := Parse(from)
	if err != nil {
		return 0, err
	}
	b, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekBounds returns the Monday..Sunday window containing t, both at
// midnight in t's location.
func WeekBounds(t time.Time) (start, end time.Time) {
	dow := int(t.Weekday())
	offset := dow - 1
	if dow == 0 {
		offset = 6
	}
	start = time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 6)
	return start, end
}

// MonthBounds returns the first and last day of a calendar month.
// Out-of-range months normalize the way time.Date does.
func MonthBounds(year int, month time.Month, loc *time.Location) (first, last time.Time) {
	if loc == nil {
		loc = time.Local
	}
	first = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last = time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return first, last
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InRange reports whether key falls within [from, to], inclusive.
func InRange(key, from, to string) bool {
	return key >= from && key <= to
}

// ParseMonth reads a YYYY-MM string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
