package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
)

// LastMeasurement returns the entry with the latest date.
func LastMeasurement(h model.Habit) (model.Measurement, bool) {
	var last model.Measurement
	found := false
	for _, m := range h.Measurements {
		if !found || m.Date > last.Date {
			last = m
			found = true
		}
	}
	return last, found
}

// ValueOnDate returns the measurement recorded for an exact date.
func ValueOnDate(h model.Habit, date string) (float64, bool) {
	for _, m := range h.Measurements {
		if m.Date == date {
			return m.Value, true
		}
	}
	return 0, false
}

// Summarize computes count, mean, min and max. An empty series yields
// zeros for every field.
func Summarize(ms []model.Measurement) model.MeasurementSummary {
	if len(ms) == 0 {
		return model.MeasurementSummary{}
	}
	s := model.MeasurementSummary{Count: len(ms), Min: ms[0].Value, Max: ms[0].Value}
	var sum float64
	for _, m := range ms {
		sum += m.Value
		if m.Value < s.Min {
			s.Min = m.Value
		}
		if m.Value > s.Max {
			s.Max = m.Value
		}
	}
	s.Mean = sum / float64(len(ms))
	return s
}

// Range names a graph time window.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYTD   Range = "ytd"
	RangeYear  Range = "year"
	RangeAll   Range = "all"
)

// Ranges lists the windows in display order.
var Ranges = []Range{RangeWeek, RangeMonth, RangeYTD, RangeYear, RangeAll}

// ErrUnknownRange is returned by ParseRange for unrecognized names.
var ErrUnknownRange = errors.New("unknown range")

// allFloor is the earliest date considered by the "all" window.
var allFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseRange validates a user-supplied range name.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q (want week, month, ytd, year or all)", ErrUnknownRange, s)
}

// RangeBounds returns the first and last date keys of a window ending
// today. Unknown ranges fall back to the week window.
func RangeBounds(r Range, now time.Time) (from, to string) {
	today := dates.StartOfDay(now)
	var start time.Time
	switch r {
	case RangeMonth:
		start = today.AddDate(0, -1, 0)
	case RangeYTD:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	case RangeYear:
		start = today.AddDate(-1, 0, 0)
	case RangeAll:
		start = time.Date(allFloor.Year(), allFloor.Month(), allFloor.Day(), 0, 0, 0, 0, today.Location())
	default:
		start = today.AddDate(0, 0, -7)
	}
	return dates.Key(start), dates.Key(today)
}

// Window returns the measurements inside the named window, sorted by date
// ascending. The result is computed fresh on every call.
func Window(ms []model.Measurement, r Range, now time.Time) []model.Measurement {
	from, to := RangeBounds(r, now)
	out := make([]model.Measurement, 0, len(ms))
	for _, m := range ms {
		if dates.InRange(m.Date, from, to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
