package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar date format used in reports.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, a plain date and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// FormatPeriod renders a range as "YYYY-MM-DD to YYYY-MM-DD" in the dates' own zones.
func FormatPeriod(from, to time.Time) string {
	return from.Format(DateLayout) + " to " + to.Format(DateLayout)
}
