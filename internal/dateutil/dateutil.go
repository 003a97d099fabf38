// Package dateutil formats and parses calendar dates. All conversions stay in
// the date's own location so a day never shifts across a timezone boundary.
package dateutil

import (
	"fmt"
	"time"
)

const brazilianLayout = "02/01/2006"

// CurrentLocalDate returns today's date as YYYY-MM-DD in local time.
func CurrentLocalDate() string {
	return FormatLocal(time.Now())
}

// FormatLocal renders t as YYYY-MM-DD using t's own calendar day.
func FormatLocal(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseLocal parses a YYYY-MM-DD string as midnight local time.
func ParseLocal(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}

// FormatBrazilian renders t as DD/MM/YYYY for display.
func FormatBrazilian(t time.Time) string {
	return t.Format(brazilianLayout)
}

// ParseBrazilian parses a DD/MM/YYYY string as midnight local time.
func ParseBrazilian(s string) (time.Time, error) {
	t, err := time.ParseInLocation(brazilianLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// MonthStart returns midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
