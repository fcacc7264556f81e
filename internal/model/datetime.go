package model

import (
	"fmt"
	"strings"
	"time"
)

// Date-times are naive wall-clock values at minute granularity. Parsed values
// use UTC only as a carrier; no conversion between locations ever happens.
const (
	DateTimeLayout        = "2006-01-02T15:04"
	displayDateTimeLayout = "02/01/2006 15:04"
	displayDateLayout     = "02/01/2006"
)

var acceptedLayouts = []string{
	DateTimeLayout,
	"2006-01-02 15:04",
	displayDateTimeLayout,
}

// ParseDateTime accepts 2006-01-02T15:04, 2006-01-02 15:04 and 02/01/2006 15:04.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q: expected YYYY-MM-DDTHH:MM or DD/MM/YYYY HH:MM", s)
}

// TruncateToMinute drops seconds and below and moves the wall clock reading
// into UTC, so values from different locations compare as naive times.
func TruncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// FormatDateTime renders t in the wire layout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}
