// Package model defines the tracks domain types: habits, their
// completion history and measurement entries.
package model

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TrackType distinguishes done/not-done habits from numeric ones.
type TrackType string

const (
	TrackPeriodic    TrackType = "periodic"
	TrackMeasurement TrackType = "measurement"
)

// PeriodicType is the cadence rule of a periodic habit.
type PeriodicType string

const (
	Everyday   PeriodicType = "everyday"
	PerWeek    PeriodicType = "perWeek"
	PerMonth   PeriodicType = "perMonth"
	EveryXDays PeriodicType = "everyXDays"
)

// DefaultFrequency is the target used when neither frequencyX nor the
// legacy frequency field is present.
const DefaultFrequency = 3

var (
	// ErrInvalidValue is returned when a measurement value is not a finite number.
	ErrInvalidValue = errors.New("invalid measurement value")
	// ErrNotFound is returned when a habit reference matches nothing.
	ErrNotFound = errors.New("track not found")
)

// ParseTrackType validates a track type string.
func ParseTrackType(s string) (TrackType, bool) {
	switch TrackType(s) {
	case TrackPeriodic, TrackMeasurement:
		return TrackType(s), true
	}
	return "", false
}

// ParsePeriodicType validates a periodic type string.
func ParsePeriodicType(s string) (PeriodicType, bool) {
	switch PeriodicType(s) {
	case Everyday, PerWeek, PerMonth, EveryXDays:
		return PeriodicType(s), true
	}
	return "", false
}

// Measurement is one numeric entry for a measurement habit.
type Measurement struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Habit is a user-defined track. Field names match the snapshot format.
type Habit struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Color          string       `json:"color"`
	TrackType      TrackType    `json:"trackType"`
	ShowInCalendar bool         `json:"showInCalendar"`
	PeriodicType   PeriodicType `json:"periodicType,omitempty"`
	FrequencyX     int          `json:"frequencyX,omitempty"`
	// Frequency is the superseded target field. Nil means the record
	// never carried it.
	Frequency    *int          `json:"frequency,omitempty"`
	Unit         string        `json:"unit,omitempty"`
	Measurements []Measurement `json:"measurements,omitempty"`
	History      History       `json:"history"`
}

// NewHabit returns a visible habit with a fresh id and empty history.
func NewHabit(name, color string, trackType TrackType) Habit {
	return Habit{
		ID:             uuid.NewString(),
		Name:           name,
		Color:          color,
		TrackType:      trackType,
		ShowInCalendar: true,
		History:        NewHistory(),
	}
}

// IsMeasurement reports whether the habit records numeric values.
func (h *Habit) IsMeasurement() bool {
	return h.TrackType == TrackMeasurement
}

// Target returns the canonical numeric target (frequencyX after load-time
// normalization), falling back to DefaultFrequency.
func (h *Habit) Target() int {
	if h.FrequencyX > 0 {
		return h.FrequencyX
	}
	return DefaultFrequency
}

// LegacyFrequency returns the stored legacy frequency, or 0 when the
// record does not carry one.
func (h *Habit) LegacyFrequency() int {
	if h.Frequency == nil {
		return 0
	}
	return *h.Frequency
}

// SetSchedule configures a periodic habit. The legacy frequency field is
// kept in step with frequencyX so older readers still see a target.
func (h *Habit) SetSchedule(pt PeriodicType, x int) {
	if x <= 0 {
		x = DefaultFrequency
	}
	h.TrackType = TrackPeriodic
	h.PeriodicType = pt
	h.FrequencyX = x
	freq := x
	h.Frequency = &freq
}

// SetMeasurementUnit configures a measurement habit.
func (h *Habit) SetMeasurementUnit(unit string) {
	h.TrackType = TrackMeasurement
	h.Unit = unit
	zero := 0
	h.Frequency = &zero
}

// MarkDone adds date to the history. It reports whether the date was new.
func (h *Habit) MarkDone(date string) bool {
	return h.History.Add(date)
}

// ToggleDate flips the completion state of date and reports the new state.
func (h *Habit) ToggleDate(date string) bool {
	if h.History.Has(date) {
		h.History.Remove(date)
		return false
	}
	h.History.Add(date)
	return true
}

// UpsertMeasurement sets the value for date, replacing any existing entry,
// and mirrors the date into the history.
func (h *Habit) UpsertMeasurement(date string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidValue
	}
	replaced := false
	for i := range h.Measurements {
		if h.Measurements[i].Date == date {
			h.Measurements[i].Value = value
			replaced = true
			break
		}
	}
	if !replaced {
		h.Measurements = append(h.Measurements, Measurement{Date: date, Value: value})
	}
	h.History.Add(date)
	return nil
}

// DeleteMeasurement removes the entry for date and always drops the date
// from the history.
func (h *Habit) DeleteMeasurement(date string) {
	n := 0
	for _, m := range h.Measurements {
		if m.Date != date {
			h.Measurements[n] = m
			n++
		}
	}
	h.Measurements = h.Measurements[:n]
	h.History.Remove(date)
}

// SetMeasurementInput applies raw user input for date. Blank input clears
// the entry; anything that is not a finite number is rejected without
// touching the habit.
func (h *Habit) SetMeasurementInput(date, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		h.DeleteMeasurement(date)
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ErrInvalidValue
	}
	return h.UpsertMeasurement(date, v)
}
