package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tracks/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"value trims zeros", FormatValue(72.50), "72.5"},
		{"integer value", FormatValue(3), "3"},
		{"measurement with unit", FormatMeasurement(10.25, "km"), "10.25 km"},
		{"measurement without unit", FormatMeasurement(8, ""), "8"},
		{"mean rounds", FormatMean(25.0 / 3), "8.33"},
		{"mean integral", FormatMean(25), "25"},
		{"rate", FormatRate(76.9), "77%"},
		{"one day", FormatDays(1), "1 day"},
		{"days", FormatDays(0), "0 days"},
		{"date", FormatDate("2024-01-08"), "Mon, Jan 8 2024"},
		{"bad date", FormatDate("soon"), "soon"},
		{"month", FormatMonth(2024, time.February), "February 2024"},
		{"monday first", FormatDayOfWeek(0), "Mon"},
		{"out of range", FormatDayOfWeek(9), "???"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRenderSparklineFlatSeries(t *testing.T) {
	if got := RenderSparkline([]float64{5, 5, 5}); got != "███" {
		t.Fatalf("flat sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{1, 2, 3}); []rune(got)[0] != '▁' || []rune(got)[2] != '█' {
		t.Fatalf("rising sparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty sparkline should render nothing")
	}
}

func TestRenderCalendarLayout(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	days := make([]model.CalendarDay, 29)
	for i := range days {
		d := time.Date(2024, time.February, i+1, 0, 0, 0, 0, time.UTC)
		days[i] = model.CalendarDay{Date: d, Key: d.Format("2006-01-02")}
	}
	out := RenderCalendar(days, "2024-02-10", 3)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want header + 5 weeks:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Mon") || !strings.Contains(lines[0], "Sun") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], " 1") || strings.Contains(lines[1], " 5") {
		t.Errorf("first week = %q", lines[1])
	}
	if !strings.Contains(lines[5], "29") {
		t.Errorf("last week = %q", lines[5])
	}
}
