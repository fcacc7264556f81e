package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Doctor is identified by its license number. Specialties are append-only and
// their order matters: the first one covering a weekday wins.
type Doctor struct {
	name        string
	license     string
	specialties []*Specialty
}

func NewDoctor(name, license string) *Doctor {
	return &Doctor{name: name, license: license}
}

func (d *Doctor) Name() string {
	return d.name
}

func (d *Doctor) License() string {
	return d.license
}

// Specialties returns a copy in insertion order.
func (d *Doctor) Specialties() []*Specialty {
	out := make([]*Specialty, len(d.specialties))
	copy(out, d.specialties)
	return out
}

// AddSpecialty appends without checking for duplicates.
func (d *Doctor) AddSpecialty(s *Specialty) {
	d.specialties = append(d.specialties, s)
}

// SpecialtyFor returns the name of the first specialty, in insertion order,
// offered on day.
func (d *Doctor) SpecialtyFor(day string) (string, bool) {
	for _, s := range d.specialties {
		if s.OffersOn(day) {
			return s.Name(), true
		}
	}
	return "", false
}

// Clone returns a doctor sharing the immutable specialties but not the slice,
// so later appends on d are not visible through the clone.
func (d *Doctor) Clone() *Doctor {
	return &Doctor{name: d.name, license: d.license, specialties: d.Specialties()}
}

func (d *Doctor) String() string {
	specs := make([]string, len(d.specialties))
	for i, s := range d.specialties {
		specs[i] = s.String()
	}
	return fmt.Sprintf("Doctor: %s (License: %s) - Specialties: %s", d.name, d.license, strings.Join(specs, ", "))
}

type doctorJSON struct {
	Name        string       `json:"name"`
	License     string       `json:"license"`
	Specialties []*Specialty `json:"specialties"`
}

func (d *Doctor) MarshalJSON() ([]byte, error) {
	return json.Marshal(doctorJSON{Name: d.name, License: d.license, Specialties: d.Specialties()})
}
