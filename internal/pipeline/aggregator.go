package pipeline

import (
	"time"

	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
)

// Every aggregate below only looks at visible habits and returns rows in
// the collection's stored order.

// Todo builds the to-do list for periodic habits.
func Todo(habits []model.Habit, now time.Time) []model.TodoItem {
	items := make([]model.TodoItem, 0, len(habits))
	for _, h := range habits {
		if !h.ShowInCalendar || h.IsMeasurement() {
			continue
		}
		p := PeriodicProgress(h, now)
		items = append(items, model.TodoItem{
			HabitID:   h.ID,
			Name:      h.Name,
			Color:     h.Color,
			Progress:  p,
			Remaining: max(0, p.Target-p.Progress),
		})
	}
	return items
}

// MonthlyStats builds the monthly summary cards.
func MonthlyStats(habits []model.Habit, year int, month time.Month) []model.MonthlyStat {
	stats := make([]model.MonthlyStat, 0, len(habits))
	for _, h := range habits {
		if !h.ShowInCalendar {
			continue
		}
		completed, expected := monthlyCounts(h, year, month)
		stats = append(stats, model.MonthlyStat{
			HabitID:       h.ID,
			Name:          h.Name,
			Color:         h.Color,
			CompletedDays: completed,
			ExpectedDays:  expected,
			Rate:          completionRate(completed, expected),
		})
	}
	return stats
}

// HabitStats builds per-habit detail metrics.
func HabitStats(habits []model.Habit, now time.Time) []model.HabitStat {
	stats := make([]model.HabitStat, 0, len(habits))
	for _, h := range habits {
		if !h.ShowInCalendar {
			continue
		}
		hs := model.HabitStat{
			HabitID:   h.ID,
			Name:      h.Name,
			Color:     h.Color,
			TrackType: h.TrackType,
			Unit:      h.Unit,
		}
		if h.IsMeasurement() {
			hs.Summary = Summarize(h.Measurements)
			if last, ok := LastMeasurement(h); ok {
				hs.Last = &last
			}
		} else {
			hs.FrequencyLabel = FrequencyLabel(h)
			hs.TotalDays = h.History.Len()
			hs.CurrentStreak = CurrentStreak(h.History, now)
			hs.LongestStreak = LongestStreak(h.History)
		}
		stats = append(stats, hs)
	}
	return stats
}

// CalendarMonth returns one cell per day of the month, each listing the
// visible habits whose history contains that day.
func CalendarMonth(habits []model.Habit, year int, month time.Month, loc *time.Location) []model.CalendarDay {
	first, _ := dates.MonthBounds(year, month, loc)
	n := dates.DaysInMonth(year, month)

	days := make([]model.CalendarDay, n)
	for i := range days {
		d := first.AddDate(0, 0, i)
		key := dates.Key(d)
		cell := model.CalendarDay{Date: d, Key: key, Habits: []model.CalendarMark{}}
		for _, h := range habits {
			if h.ShowInCalendar && h.History.Has(key) {
				cell.Habits = append(cell.Habits, model.CalendarMark{HabitID: h.ID, Name: h.Name, Color: h.Color})
			}
		}
		days[i] = cell
	}
	return days
}

// DayDetail lists every habit with its state on date. Hidden habits are
// included so they can still be edited from the day view.
func DayDetail(habits []model.Habit, date string) []model.DayEntry {
	entries := make([]model.DayEntry, 0, len(habits))
	for _, h := range habits {
		e := model.DayEntry{
			HabitID:   h.ID,
			Name:      h.Name,
			Color:     h.Color,
			TrackType: h.TrackType,
			Unit:      h.Unit,
			Done:      h.History.Has(date),
		}
		if h.IsMeasurement() {
			if v, ok := ValueOnDate(h, date); ok {
				e.Value = &v
			}
		}
		entries = append(entries, e)
	}
	return entries
}
