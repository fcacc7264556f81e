package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Specialty is a medical specialty together with the weekdays a doctor offers it.
type Specialty struct {
	name    string
	days    []Weekday
	offered map[Weekday]bool
}

// NewSpecialty normalizes days case-insensitively. Repeated days are kept once,
// in first-seen order.
func NewSpecialty(name string, days []string) *Specialty {
	s := &Specialty{
		name:    name,
		days:    make([]Weekday, 0, len(days)),
		offered: make(map[Weekday]bool, len(days)),
	}
	for _, d := range days {
		day := ParseWeekday(d)
		if day == "" || s.offered[day] {
			continue
		}
		s.offered[day] = true
		s.days = append(s.days, day)
	}
	return s
}

func (s *Specialty) Name() string {
	return s.name
}

// Days returns a copy of the offered days.
func (s *Specialty) Days() []Weekday {
	out := make([]Weekday, len(s.days))
	copy(out, s.days)
	return out
}

// OffersOn matches day case-insensitively.
func (s *Specialty) OffersOn(day string) bool {
	return s.offered[ParseWeekday(day)]
}

func (s *Specialty) String() string {
	names := make([]string, len(s.days))
	for i, d := range s.days {
		names[i] = string(d)
	}
	return fmt.Sprintf("%s (Days: %s)", s.name, strings.Join(names, ", "))
}

type specialtyJSON struct {
	Name string    `json:"name"`
	Days []Weekday `json:"days"`
}

func (s *Specialty) MarshalJSON() ([]byte, error) {
	return json.Marshal(specialtyJSON{Name: s.name, Days: s.Days()})
}
