package dates

import (
	"testing"
	"time"
)

func TestKeyUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 23:30 local on Jan 31 is already Feb 1 in UTC.
	at := time.Date(2024, 1, 31, 23, 30, 0, 0, loc)
	if got := Key(at); got != "2024-01-31" {
		t.Fatalf("Key = %q, want 2024-01-31", got)
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		wantStart string
		wantEnd   string
	}{
		{"monday", time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), "2024-06-10", "2024-06-16"},
		{"wednesday", time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), "2024-06-10", "2024-06-16"},
		{"sunday", time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC), "2024-06-10", "2024-06-16"},
		{"across month", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "2024-02-26", "2024-03-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.at)
			if Key(start) != tt.wantStart || Key(end) != tt.wantEnd {
				t.Fatalf("WeekBounds = %s..%s, want %s..%s", Key(start), Key(end), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		last  string
	}{
		{2024, time.February, "2024-02-29"},
		{2023, time.February, "2023-02-28"},
		{2024, time.April, "2024-04-30"},
		{2024, time.December, "2024-12-31"},
	}
	for _, tt := range tests {
		first, last := MonthBounds(tt.year, tt.month, time.UTC)
		if first.Day() != 1 || first.Month() != tt.month {
			t.Errorf("first = %s, want day 1 of %s", Key(first), tt.month)
		}
		if Key(last) != tt.last {
			t.Errorf("last = %s, want %s", Key(last), tt.last)
		}
		if DaysInMonth(tt.year, tt.month) != last.Day() {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, DaysInMonth(tt.year, tt.month), last.Day())
		}
	}
}

func TestDaysBetweenAndAddDays(t *testing.T) {
	n, err := DaysBetween("2024-02-27", "2024-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("DaysBetween = %d, want 4", n)
	}

	prev, err := AddDays("2024-03-01", -1)
	if err != nil {
		t.Fatal(err)
	}
	if prev != "2024-02-29" {
		t.Fatalf("AddDays = %q, want 2024-02-29", prev)
	}

	if _, err := DaysBetween("nope", "2024-01-01"); err == nil {
		t.Fatal("expected error for malformed key")
	}
}

func TestInRangeAndParseMonth(t *testing.T) {
	if !InRange("2024-05-10", "2024-05-01", "2024-05-31") {
		t.Fatal("expected key inside range")
	}
	if InRange("2024-06-01", "2024-05-01", "2024-05-31") {
		t.Fatal("expected key outside range")
	}

	y, m, err := ParseMonth("2024-11")
	if err != nil || y != 2024 || m != time.November {
		t.Fatalf("ParseMonth = %d %s %v", y, m, err)
	}
}
