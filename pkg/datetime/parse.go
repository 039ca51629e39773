// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/vcarrera/loan-portfolio/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the
	// output date format.
	DateTimeLayout = constants.DateTimeLayout
)

// ParseMonth parses a YYYY-MM date string into a time.Time.
func ParseMonth(date string) (time.Time, error) {
	return time.Parse(DateTimeLayout, date)
}

// FormatMonth formats a time.Time as a YYYY-MM date string.
func FormatMonth(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}
