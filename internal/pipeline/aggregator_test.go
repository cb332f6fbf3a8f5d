package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/tracks/internal/model"
)

func fixture() []model.Habit {
	run := periodic(model.PerWeek, 3, "2024-01-08", "2024-01-10")
	run.ID, run.Name = "run", "Run"

	read := periodic(model.Everyday, 1, "2024-01-10", "2024-01-09")
	read.ID, read.Name = "read", "Read"

	hidden := periodic(model.PerWeek, 2, "2024-01-10")
	hidden.ID, hidden.Name, hidden.ShowInCalendar = "hidden", "Hidden", false

	weight := measured(model.Measurement{Date: "2024-01-10", Value: 71.5})
	weight.ID = "weight"

	return []model.Habit{run, read, hidden, weight}
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTodo(t *testing.T) {
	now := day(2024, time.January, 10)
	items := Todo(fixture(), now)

	got := ids(items, func(i model.TodoItem) string { return i.HabitID })
	if !equal(got, []string{"run", "read"}) {
		t.Fatalf("todo ids = %v, want [run read]", got)
	}
	if items[0].Progress.Progress != 2 || items[0].Remaining != 1 {
		t.Errorf("run = %+v", items[0])
	}
	if items[1].Remaining != 0 || !items[1].Progress.IsEveryday {
		t.Errorf("read = %+v", items[1])
	}
}

func TestMonthlyStatsVisibleOnly(t *testing.T) {
	stats := MonthlyStats(fixture(), 2024, time.January)
	got := ids(stats, func(s model.MonthlyStat) string { return s.HabitID })
	if !equal(got, []string{"run", "read", "weight"}) {
		t.Fatalf("monthly ids = %v", got)
	}
	// 3x/week over 31 days expects 13.
	if stats[0].CompletedDays != 2 || stats[0].ExpectedDays != 13 {
		t.Errorf("run monthly = %+v", stats[0])
	}
	if stats[2].ExpectedDays != 0 || stats[2].Rate != 0 {
		t.Errorf("measurement monthly = %+v, want zero expectation", stats[2])
	}
}

func TestHabitStats(t *testing.T) {
	now := day(2024, time.January, 10)
	stats := HabitStats(fixture(), now)
	if len(stats) != 3 {
		t.Fatalf("stats = %d rows, want 3", len(stats))
	}

	read := stats[1]
	if read.TotalDays != 2 || read.CurrentStreak != 2 || read.LongestStreak != 2 || read.FrequencyLabel != "Everyday" {
		t.Errorf("read stats = %+v", read)
	}

	weight := stats[2]
	if weight.Summary.Count != 1 || weight.Last == nil || weight.Last.Value != 71.5 || weight.Unit != "kg" {
		t.Errorf("weight stats = %+v", weight)
	}
}

func TestCalendarMonth(t *testing.T) {
	days := CalendarMonth(fixture(), 2024, time.January, time.UTC)
	if len(days) != 31 {
		t.Fatalf("cells = %d, want 31", len(days))
	}
	tenth := days[9]
	if tenth.Key != "2024-01-10" {
		t.Fatalf("cell 9 key = %s", tenth.Key)
	}
	got := ids(tenth.Habits, func(m model.CalendarMark) string { return m.HabitID })
	if !equal(got, []string{"run", "read", "weight"}) {
		t.Fatalf("marks on 2024-01-10 = %v", got)
	}
	if len(days[0].Habits) != 0 || days[0].Habits == nil {
		t.Errorf("first cell marks = %#v, want empty non-nil", days[0].Habits)
	}
}

func TestDayDetailIncludesHidden(t *testing.T) {
	entries := DayDetail(fixture(), "2024-01-10")
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	for _, e := range entries {
		if !e.Done {
			t.Errorf("%s not done on 2024-01-10", e.HabitID)
		}
	}
	if entries[3].Value == nil || *entries[3].Value != 71.5 {
		t.Errorf("weight entry value = %v", entries[3].Value)
	}
	if entries[0].Value != nil {
		t.Error("periodic entry carries a value")
	}
}

func TestAggregatesOnEmptyCollection(t *testing.T) {
	now := day(2024, time.January, 10)
	if got := Todo(nil, now); got == nil || len(got) != 0 {
		t.Errorf("Todo(nil) = %#v", got)
	}
	if got := MonthlyStats(nil, 2024, time.January); got == nil || len(got) != 0 {
		t.Errorf("MonthlyStats(nil) = %#v", got)
	}
	if got := HabitStats(nil, now); got == nil || len(got) != 0 {
		t.Errorf("HabitStats(nil) = %#v", got)
	}
	if got := DayDetail(nil, "2024-01-10"); got == nil || len(got) != 0 {
		t.Errorf("DayDetail(nil) = %#v", got)
	}
}
