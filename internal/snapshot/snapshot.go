// Package snapshot encodes and decodes the habit collection document used
// by persistence and by import/export.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/tracks/internal/dates"
	"github.com/theirongolddev/tracks/internal/model"
)

// ErrInvalidFormat is returned when a document is not a sequence of habits.
var ErrInvalidFormat = errors.New("invalid file format")

// record mirrors model.Habit with every optional field nullable so that
// absent fields can be told apart from zero values.
type record struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Color          string              `json:"color"`
	TrackType      string              `json:"trackType"`
	ShowInCalendar *bool               `json:"showInCalendar"`
	PeriodicType   string              `json:"periodicType"`
	FrequencyX     *int                `json:"frequencyX"`
	Frequency      *int                `json:"frequency"`
	Unit           string              `json:"unit"`
	Measurements   []model.Measurement `json:"measurements"`
	History        model.History       `json:"history"`
}

// Decode parses a snapshot document into normalized habits. Anything that
// is not a JSON array is rejected as a whole.
func Decode(data []byte) ([]model.Habit, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidFormat
	}

	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	habits := make([]model.Habit, 0, len(records))
	for _, r := range records {
		habits = append(habits, normalize(r))
	}
	return habits, nil
}

// normalize applies the legacy fallback chain once so that every reader
// sees a canonical record.
func normalize(r record) model.Habit {
	h := model.Habit{
		ID:             r.ID,
		Name:           r.Name,
		Color:          r.Color,
		TrackType:      model.TrackType(r.TrackType),
		ShowInCalendar: true,
		PeriodicType:   model.PeriodicType(r.PeriodicType),
		Frequency:      r.Frequency,
		Unit:           r.Unit,
		Measurements:   validMeasurements(r.Measurements),
		History:        validHistory(r.History),
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if r.ShowInCalendar != nil {
		h.ShowInCalendar = *r.ShowInCalendar
	}
	if _, ok := model.ParseTrackType(r.TrackType); !ok {
		h.TrackType = model.TrackPeriodic
	}

	switch {
	case r.FrequencyX != nil && *r.FrequencyX > 0:
		h.FrequencyX = *r.FrequencyX
	case r.Frequency != nil && *r.Frequency > 0:
		h.FrequencyX = *r.Frequency
	default:
		h.FrequencyX = model.DefaultFrequency
	}

	if h.IsMeasurement() {
		// Measurement tracks carry no cadence; keep whatever the record had.
		if r.FrequencyX == nil {
			h.FrequencyX = 0
		}
		repairMirror(&h)
	} else if _, ok := model.ParsePeriodicType(r.PeriodicType); !ok {
		h.PeriodicType = model.PerWeek
	}
	return h
}

// validHistory drops entries that are not YYYY-MM-DD date keys.
func validHistory(h model.History) model.History {
	out := model.NewHistory()
	for _, d := range h.Dates() {
		if dates.Valid(d) {
			out.Add(d)
		}
	}
	return out
}

func validMeasurements(ms []model.Measurement) []model.Measurement {
	if ms == nil {
		return nil
	}
	out := make([]model.Measurement, 0, len(ms))
	for _, m := range ms {
		if dates.Valid(m.Date) {
			out = append(out, m)
		}
	}
	return out
}

// repairMirror restores the history/measurement bijection of a
// measurement habit: one entry per date, and history holds exactly the
// measured dates.
func repairMirror(h *model.Habit) {
	byDate := make(map[string]int, len(h.Measurements))
	deduped := make([]model.Measurement, 0, len(h.Measurements))
	for _, m := range h.Measurements {
		if i, ok := byDate[m.Date]; ok {
			deduped[i].Value = m.Value
			continue
		}
		byDate[m.Date] = len(deduped)
		deduped = append(deduped, m)
	}
	h.Measurements = deduped

	history := model.NewHistory()
	for _, d := range h.History.Dates() {
		if _, ok := byDate[d]; ok {
			history.Add(d)
		}
	}
	for _, m := range deduped {
		history.Add(m.Date)
	}
	h.History = history
}

// Encode renders habits as a pretty-printed document.
func Encode(habits []model.Habit) ([]byte, error) {
	if habits == nil {
		habits = []model.Habit{}
	}
	data, err := json.MarshalIndent(habits, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// ExportFileName is the default file name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("habits-%s.json", dates.Key(now))
}
