package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

// MonthNames is the ordered list of month names, January first.
var MonthNames = buildMonthNames()

// DayLabels holds every possible day-of-month as a two-character label ("01".."31").
// It is not tied to the length of any particular month.
var DayLabels = buildDayLabels()

func buildMonthNames() []string {
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, m.String())
	}
	return names
}

func buildDayLabels() []string {
	labels := make([]string, 0, 31)
	for d := 1; d <= 31; d++ {
		labels = append(labels, fmt.Sprintf("%02d", d))
	}
	return labels
}

// MonthsBeforeCurrent returns the month names from January up to, but excluding, the month of t.
func MonthsBeforeCurrent(t time.Time) []string {
	idx := int(t.Month()) - 1
	labels := make([]string, idx)
	copy(labels, MonthNames[:idx])
	return labels
}

// DayWindow returns the half-open [start, end) span of the UTC calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := now.With(t.UTC()).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open span of the given month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := now.With(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)).BeginningOfMonth()
	return start, start.AddDate(0, 1, 0)
}

// YearWindow returns the half-open span of the given year.
func YearWindow(year int) (time.Time, time.Time) {
	start := now.With(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)).BeginningOfYear()
	return start, start.AddDate(1, 0, 0)
}

// ParseDate accepts either a plain date (2006-01-02) or an RFC 3339 timestamp and returns it in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	return t.UTC(), nil
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
