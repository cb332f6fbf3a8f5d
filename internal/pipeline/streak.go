package pipeline

import (
	"time"

	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
)

// CurrentStreak counts consecutive days present in history, walking back
// from today. A missing today means no streak.
func CurrentStreak(history model.History, now time.Time) int {
	streak := 0
	day := dates.StartOfDay(now)
	for history.Has(dates.Key(day)) {
		streak++
		day = time.Date(day.Year(), day.Month(), day.Day()-1, 0, 0, 0, 0, day.Location())
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days in
// history.
func LongestStreak(history model.History) int {
	sorted := history.Sorted()
	longest, run := 0, 0
	for i, d := range sorted {
		if i == 0 {
			run = 1
		} else if gap, err := dates.DaysBetween(sorted[i-1], d); err == nil && gap == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
