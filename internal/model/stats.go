package model

import "time"

// Progress is a periodic habit's standing for its current period.
type Progress struct {
	Progress   int
	Target     int
	Label      string
	IsEveryday bool
}

// Fraction returns progress/target capped at 1, or 0 without a target.
func (p Progress) Fraction() float64 {
	if p.Target <= 0 {
		return 0
	}
	f := float64(p.Progress) / float64(p.Target)
	if f > 1 {
		return 1
	}
	return f
}

// Complete reports whether the target has been reached.
func (p Progress) Complete() bool {
	return p.Progress >= p.Target
}

// MeasurementSummary holds count/mean/min/max over a measurement series.
// An empty series reports zeros rather than NaN.
type MeasurementSummary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// TodoItem is one row of the to-do list.
type TodoItem struct {
	HabitID   string
	Name      string
	Color     string
	Progress  Progress
	Remaining int
}

// MonthlyStat is one monthly summary card.
type MonthlyStat struct {
	HabitID       string
	Name          string
	Color         string
	CompletedDays int
	ExpectedDays  int
	Rate          float64 // percentage, 0-100
}

// HabitStat holds per-habit detail metrics. Periodic habits fill the
// streak fields; measurement habits fill Summary and Last.
type HabitStat struct {
	HabitID        string
	Name           string
	Color          string
	TrackType      TrackType
	FrequencyLabel string
	Unit           string

	TotalDays     int
	CurrentStreak int
	LongestStreak int

	Summary MeasurementSummary
	Last    *Measurement
}

// CalendarDay is one cell of a month calendar.
type CalendarDay struct {
	Date   time.Time
	Key    string
	Habits []CalendarMark
}

// CalendarMark identifies a habit present on a calendar day.
type CalendarMark struct {
	HabitID string
	Name    string
	Color   string
}

// DayEntry is one habit's state on a given day, for the day detail view.
type DayEntry struct {
	HabitID   string
	Name      string
	Color     string
	TrackType TrackType
	Unit      string
	Done      bool
	Value     *float64
}
