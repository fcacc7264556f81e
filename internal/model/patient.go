package model

import (
	"encoding/json"
	"fmt"
)

// Patient is identified by its national ID. The birth date is display text and
// is never parsed.
type Patient struct {
	name       string
	nationalID string
	birthDate  string
}

func NewPatient(name, nationalID, birthDate string) *Patient {
	return &Patient{name: name, nationalID: nationalID, birthDate: birthDate}
}

func (p *Patient) Name() string {
	return p.name
}

func (p *Patient) NationalID() string {
	return p.nationalID
}

func (p *Patient) BirthDate() string {
	return p.birthDate
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient: %s (National ID: %s) - Born: %s", p.name, p.nationalID, p.birthDate)
}

type patientJSON struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	BirthDate  string `json:"birth_date"`
}

func (p *Patient) MarshalJSON() ([]byte, error) {
	return json.Marshal(patientJSON{Name: p.name, NationalID: p.nationalID, BirthDate: p.birthDate})
}
