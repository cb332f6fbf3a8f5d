package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/snapshot"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func periodic(pt model.PeriodicType, x int, history ...string) model.Habit {
	h := model.NewHabit("h", "#fff", model.TrackPeriodic)
	h.SetSchedule(pt, x)
	h.History = model.NewHistory(history...)
	return h
}

func TestPeriodicProgressPerWeek(t *testing.T) {
	// Wednesday 2024-01-10; week is Mon 01-08 .. Sun 01-14.
	now := day(2024, time.January, 10)
	h := periodic(model.PerWeek, 3, "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-07", "2024-01-15")

	p := PeriodicProgress(h, now)
	if p.Progress != 3 || p.Target != 3 || p.Label != "this week" || p.IsEveryday {
		t.Fatalf("progress = %+v, want 3/3 this week", p)
	}
	if !p.Complete() {
		t.Error("expected complete")
	}
}

func TestPeriodicProgressSundayBelongsToPreviousWeek(t *testing.T) {
	now := day(2024, time.January, 14) // Sunday
	h := periodic(model.PerWeek, 2, "2024-01-08", "2024-01-14", "2024-01-15")
	if got := PeriodicProgress(h, now).Progress; got != 2 {
		t.Fatalf("progress = %d, want 2", got)
	}
}

func TestPeriodicProgressEveryday(t *testing.T) {
	now := day(2024, time.March, 5)
	h := periodic(model.Everyday, 9, "2024-03-04")
	p := PeriodicProgress(h, now)
	if p.Progress != 0 || p.Target != 1 || !p.IsEveryday || p.Label != "everyday" {
		t.Fatalf("progress = %+v", p)
	}

	h.MarkDone("2024-03-05")
	if p := PeriodicProgress(h, now); p.Progress != 1 {
		t.Fatalf("after marking today progress = %d, want 1", p.Progress)
	}
}

func TestPeriodicProgressPerMonth(t *testing.T) {
	now := day(2024, time.February, 29)
	h := periodic(model.PerMonth, 10, "2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01")
	p := PeriodicProgress(h, now)
	if p.Progress != 2 || p.Target != 10 || p.Label != "this month" {
		t.Fatalf("progress = %+v", p)
	}
}

func TestPeriodicProgressEveryXDaysBoundary(t *testing.T) {
	now := day(2024, time.January, 10)
	tests := []struct {
		last string
		want int
	}{
		{"2024-01-10", 1},
		{"2024-01-08", 1}, // 2 days ago
		{"2024-01-07", 0}, // 3 days ago
		{"2023-12-01", 0},
	}
	for _, tt := range tests {
		h := periodic(model.EveryXDays, 3, tt.last)
		p := PeriodicProgress(h, now)
		if p.Progress != tt.want || p.Target != 1 {
			t.Errorf("last=%s: progress = %+v, want %d/1", tt.last, p, tt.want)
		}
		if p.Label != "every 3 days" {
			t.Errorf("label = %q", p.Label)
		}
	}

	empty := periodic(model.EveryXDays, 3)
	if p := PeriodicProgress(empty, now); p.Progress != 0 {
		t.Fatalf("empty history progress = %d, want 0", p.Progress)
	}
}

func TestEveryXDaysIgnoresMalformedStoredDates(t *testing.T) {
	habits, err := snapshot.Decode([]byte(
		`[{"id":"s","name":"Stretch","periodicType":"everyXDays","frequencyX":3,"history":["2024-03-09","x"]}]`))
	if err != nil {
		t.Fatal(err)
	}
	p := PeriodicProgress(habits[0], day(2024, time.March, 10))
	if p.Progress != 1 || p.Target != 1 {
		t.Fatalf("progress = %d/%d, want 1/1", p.Progress, p.Target)
	}
}

func TestPeriodicProgressUnknownCadenceIsPerWeek(t *testing.T) {
	h := periodic(model.PerWeek, 2, "2024-01-08")
	h.PeriodicType = "fortnightly"
	p := PeriodicProgress(h, day(2024, time.January, 10))
	if p.Label != "this week" || p.Progress != 1 || p.Target != 2 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestTargetFallsBackToDefault(t *testing.T) {
	h := periodic(model.PerWeek, 0)
	if got := PeriodicProgress(h, day(2024, time.January, 10)).Target; got != model.DefaultFrequency {
		t.Fatalf("target = %d, want %d", got, model.DefaultFrequency)
	}
}

func TestDaysSinceLastDone(t *testing.T) {
	now := time.Date(2024, time.March, 31, 23, 30, 0, 0, time.UTC)
	h := periodic(model.EveryXDays, 2, "2024-03-10", "2024-03-29")
	days, ok := DaysSinceLastDone(h, now)
	if !ok || days != 2 {
		t.Fatalf("DaysSinceLastDone = %d, %v; want 2, true", days, ok)
	}

	if _, ok := DaysSinceLastDone(periodic(model.EveryXDays, 2), now); ok {
		t.Fatal("expected no completion for empty history")
	}
}

func TestMonthlyCompletionRate(t *testing.T) {
	allOf := func(y int, m time.Month, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%04d-%02d-%02d", y, m, i+1)
		}
		return out
	}

	full := periodic(model.Everyday, 7, allOf(2024, time.April, 30)...)
	if got := MonthlyCompletionRate(full, 2024, time.April); got != 100 {
		t.Errorf("full month rate = %v, want 100", got)
	}

	// 3x/week over 31 days expects round(13.28) = 13.
	partial := periodic(model.PerWeek, 3, allOf(2024, time.January, 13)[:10]...)
	want := 10.0 / 13.0 * 100
	if got := MonthlyCompletionRate(partial, 2024, time.January); got != want {
		t.Errorf("partial rate = %v, want %v", got, want)
	}

	over := periodic(model.PerWeek, 1, allOf(2024, time.January, 20)...)
	if got := MonthlyCompletionRate(over, 2024, time.January); got != 100 {
		t.Errorf("capped rate = %v, want 100", got)
	}

	legacyless := periodic(model.PerWeek, 3, allOf(2024, time.January, 5)...)
	legacyless.Frequency = nil
	if got := MonthlyCompletionRate(legacyless, 2024, time.January); got != 0 {
		t.Errorf("rate without legacy frequency = %v, want 0", got)
	}
}

func TestFrequencyLabel(t *testing.T) {
	tests := []struct {
		pt   model.PeriodicType
		x    int
		want string
	}{
		{model.Everyday, 4, "Everyday"},
		{model.PerWeek, 3, "3x per week"},
		{model.PerMonth, 12, "12x per month"},
		{model.EveryXDays, 5, "Every 5 days"},
	}
	for _, tt := range tests {
		if got := FrequencyLabel(periodic(tt.pt, tt.x)); got != tt.want {
			t.Errorf("FrequencyLabel(%s, %d) = %q, want %q", tt.pt, tt.x, got, tt.want)
		}
	}
}
