package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM" timestamp in UTC.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime %q must be YYYY-MM-DD HH:MM: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// DatesBetween returns every date from start to end inclusive, formatted as
// YYYY-MM-DD. It returns nil when end is before start.
func DatesBetween(start, end time.Time) []string {
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

func NowUnixSeconds() int64 { return time.Now().Unix() }
