package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekday is a day name in the clinic's fixed locale.
type Weekday string

const (
	Monday    Weekday = "lunes"
	Tuesday   Weekday = "martes"
	Wednesday Weekday = "miércoles"
	Thursday  Weekday = "jueves"
	Friday    Weekday = "viernes"
	Saturday  Weekday = "sábado"
	Sunday    Weekday = "domingo"
)

// indexed by time.Weekday, which starts on Sunday
var weekdays = [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the locale day name of t's wall-clock date.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

// ParseWeekday normalizes free text for matching. Names outside the locale
// list are kept as given; they never match a date.
func ParseWeekday(s string) Weekday {
	// Casers keep state, so one per call.
	return Weekday(cases.Lower(language.Spanish).String(strings.TrimSpace(s)))
}

// Valid reports whether d is one of the seven locale names.
func (d Weekday) Valid() bool {
	for _, w := range weekdays {
		if w == d {
			return true
		}
	}
	return false
}

func (d Weekday) String() string {
	return string(d)
}

// Weekdays returns the locale names from Monday to Sunday.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}
