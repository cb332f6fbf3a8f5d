// Package pipeline derives progress, streaks and statistics from habit
// records. Every function takes the current instant explicitly and keeps
// no state between calls.
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
)

// PeriodicProgress computes current progress against the habit's target
// for its cadence. Unknown cadences are treated as perWeek.
func PeriodicProgress(h model.Habit, now time.Time) model.Progress {
	x := h.Target()

	switch h.PeriodicType {
	case model.Everyday:
		p := 0
		if h.History.Has(dates.Key(now)) {
			p = 1
		}
		return model.Progress{Progress: p, Target: 1, Label: "everyday", IsEveryday: true}

	case model.PerMonth:
		return model.Progress{Progress: MonthProgress(h, now), Target: x, Label: "this month"}

	case model.EveryXDays:
		p := 0
		if days, done := DaysSinceLastDone(h, now); done && days < x {
			p = 1
		}
		return model.Progress{Progress: p, Target: 1, Label: fmt.Sprintf("every %d days", x)}

	default:
		return model.Progress{Progress: WeekProgress(h, now), Target: x, Label: "this week"}
	}
}

// WeekProgress counts completions in the Monday-start week containing now.
func WeekProgress(h model.Habit, now time.Time) int {
	start, end := dates.WeekBounds(now)
	return h.History.CountBetween(dates.Key(start), dates.Key(end))
}

// MonthProgress counts completions in the calendar month containing now.
func MonthProgress(h model.Habit, now time.Time) int {
	first, last := dates.MonthBounds(now.Year(), now.Month(), now.Location())
	return h.History.CountBetween(dates.Key(first), dates.Key(last))
}

// DaysSinceLastDone returns whole days between the latest history date and
// now's local date. done is false when the history is empty.
func DaysSinceLastDone(h model.Habit, now time.Time) (int, bool) {
	latest, ok := h.History.Latest()
	if !ok {
		return math.MaxInt, false
	}
	days, err := dates.DaysBetween(latest, dates.Key(now))
	if err != nil {
		return math.MaxInt, false
	}
	return days, true
}

// MonthlyCompletionRate returns a 0-100 completion percentage for a month.
// Expected days always follow the legacy times-per-week model using the
// stored frequency field, whatever the habit's cadence.
func MonthlyCompletionRate(h model.Habit, year int, month time.Month) float64 {
	completed, expected := monthlyCounts(h, year, month)
	return completionRate(completed, expected)
}

func monthlyCounts(h model.Habit, year int, month time.Month) (completed, expected int) {
	first, last := dates.MonthBounds(year, month, time.UTC)
	completed = h.History.CountBetween(dates.Key(first), dates.Key(last))

	weeks := float64(dates.DaysInMonth(year, month)) / 7
	expected = int(math.Round(float64(h.LegacyFrequency()) * weeks))
	return completed, expected
}

func completionRate(completed, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	return math.Min(float64(completed)/float64(expected), 1) * 100
}

// FrequencyLabel returns the human-readable cadence of a periodic habit.
func FrequencyLabel(h model.Habit) string {
	x := h.Target()
	switch h.PeriodicType {
	case model.Everyday:
		return "Everyday"
	case model.PerMonth:
		return fmt.Sprintf("%dx per month", x)
	case model.EveryXDays:
		return fmt.Sprintf("Every %d days", x)
	default:
		return fmt.Sprintf("%dx per week", x)
	}
}
