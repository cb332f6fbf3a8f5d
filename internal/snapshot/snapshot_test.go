package snapshot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tracks/internal/model"
)

func TestDecodeRejectsNonSequence(t *testing.T) {
	for _, doc := range []string{`{"id":"x"}`, `"habits"`, ``, `42`, `[{"id":`} {
		_, err := Decode([]byte(doc))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidFormat", doc, err)
		}
	}
}

func TestDecodeEmptySequence(t *testing.T) {
	habits, err := Decode([]byte(" [] "))
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Fatalf("habits = %d, want 0", len(habits))
	}
}

func TestDecodeAppliesFallbackChain(t *testing.T) {
	doc := `[
		{"id":"a","name":"A","history":[]},
		{"id":"b","name":"B","frequency":5,"history":[]},
		{"id":"c","name":"C","frequencyX":2,"frequency":5,"periodicType":"perMonth","showInCalendar":false,"history":[]}
	]`
	habits, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	a, b, c := habits[0], habits[1], habits[2]
	if a.FrequencyX != 3 || a.PeriodicType != model.PerWeek || a.TrackType != model.TrackPeriodic || !a.ShowInCalendar {
		t.Errorf("a = %+v, want defaults (3, perWeek, periodic, visible)", a)
	}
	if a.Frequency != nil {
		t.Errorf("a legacy frequency = %v, want absent", *a.Frequency)
	}
	if b.FrequencyX != 5 {
		t.Errorf("b FrequencyX = %d, want legacy 5", b.FrequencyX)
	}
	if c.FrequencyX != 2 || c.PeriodicType != model.PerMonth || c.ShowInCalendar {
		t.Errorf("c = %+v", c)
	}
	if c.LegacyFrequency() != 5 {
		t.Errorf("c legacy = %d, want 5 preserved", c.LegacyFrequency())
	}
}

func TestDecodeRepairsMeasurementMirror(t *testing.T) {
	doc := `[{"id":"m","name":"Weight","trackType":"measurement","unit":"kg",
		"measurements":[{"date":"2024-01-01","value":10},{"date":"2024-01-01","value":20},{"date":"2024-01-02","value":30}],
		"history":["2024-01-02","2024-01-09"]}]`
	habits, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	h := habits[0]
	if len(h.Measurements) != 2 || h.Measurements[0].Value != 20 {
		t.Fatalf("measurements = %+v", h.Measurements)
	}
	got := h.History.Dates()
	if len(got) != 2 || got[0] != "2024-01-02" || got[1] != "2024-01-01" {
		t.Fatalf("history = %v, want [2024-01-02 2024-01-01]", got)
	}
}

func TestDecodeDropsMalformedDates(t *testing.T) {
	doc := `[
		{"id":"p","name":"Stretch","periodicType":"everyXDays","frequencyX":3,"history":["2024-03-09","x","2024-13-01"]},
		{"id":"m","name":"Weight","trackType":"measurement",
		 "measurements":[{"date":"soon","value":1},{"date":"2024-03-02","value":70}],"history":["soon","2024-03-02"]}
	]`
	habits, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	if got := habits[0].History.Dates(); len(got) != 1 || got[0] != "2024-03-09" {
		t.Errorf("periodic history = %v, want [2024-03-09]", got)
	}
	if latest, _ := habits[0].History.Latest(); latest != "2024-03-09" {
		t.Errorf("latest = %q, want 2024-03-09", latest)
	}

	m := habits[1]
	if len(m.Measurements) != 1 || m.Measurements[0].Date != "2024-03-02" {
		t.Errorf("measurements = %+v", m.Measurements)
	}
	if got := m.History.Dates(); len(got) != 1 || got[0] != "2024-03-02" {
		t.Errorf("measurement history = %v", got)
	}
}

func TestEncodeKeepsLegacyFields(t *testing.T) {
	habits, err := Decode([]byte(`[{"id":"x","name":"X","frequency":4,"history":["2024-01-01","2024-01-01"]}]`))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(habits)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"frequency": 4`, `"frequencyX": 4`, `"periodicType": "perWeek"`, "\n  {"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "2024-01-01") != 1 {
		t.Errorf("duplicate history date survived encoding:\n%s", out)
	}

	again, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].History.Len() != 1 || again[0].FrequencyX != 4 {
		t.Fatalf("round trip = %+v", again[0])
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("Encode(nil) = %s, want []", data)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 7, 4, 22, 0, 0, 0, time.Local)
	if got := ExportFileName(now); got != "habits-2024-07-04.json" {
		t.Fatalf("ExportFileName = %q", got)
	}
}
