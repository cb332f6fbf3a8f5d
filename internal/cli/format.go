// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tracks/internal/dates"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRate formats a 0-100 percentage with no decimals.
func FormatRate(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatValue renders a measurement without trailing zeros.
// e.g., 72.50 -> "72.5", 3 -> "3"
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMean renders a derived value rounded to two decimals.
func FormatMean(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatMeasurement joins a value and its unit.
func FormatMeasurement(v float64, unit string) string {
	if unit == "" {
		return FormatValue(v)
	}
	return FormatValue(v) + " " + unit
}

// FormatDays pluralizes a day count.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatDayOfWeek returns a 3-letter day abbreviation for a Monday-first
// column index (0 = Mon).
func FormatDayOfWeek(col int) string {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if col >= 0 && col < 7 {
		return days[col]
	}
	return "???"
}

// FormatDate renders a date key as "Mon, Jan 2 2006". Invalid keys are
// returned unchanged.
func FormatDate(key string) string {
	t, err := dates.Parse(key)
	if err != nil {
		return key
	}
	return t.Format("Mon, Jan 2 2006")
}

// FormatMonth renders a month heading such as "January 2024".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
