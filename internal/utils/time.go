package utils

import (
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutDateLabel = "2 Jan 2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD as a calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}

// DateLabel formats YYYY-MM-DD as "15 Jun 2024". Unparseable input is returned unchanged.
func DateLabel(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format(layoutDateLabel)
}
