package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prescription lists the medications a doctor prescribed to a patient.
type Prescription struct {
	id          uuid.UUID
	patient     *Patient
	doctor      *Doctor
	medications []string
	issuedAt    time.Time
}

// NewPrescription copies medications as given and the doctor as it stands;
// cleaning the medications is up to the issuer.
func NewPrescription(patient *Patient, doctor *Doctor, medications []string, issuedAt time.Time) *Prescription {
	meds := make([]string, len(medications))
	copy(meds, medications)
	return &Prescription{
		id:          uuid.New(),
		patient:     patient,
		doctor:      doctor.Clone(),
		medications: meds,
		issuedAt:    issuedAt,
	}
}

// CleanMedications trims every entry and drops the blank ones.
func CleanMedications(medications []string) []string {
	out := make([]string, 0, len(medications))
	for _, m := range medications {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

func (p *Prescription) ID() uuid.UUID {
	return p.id
}

func (p *Prescription) Patient() *Patient {
	return p.patient
}

func (p *Prescription) Doctor() *Doctor {
	return p.doctor
}

// Medications returns a copy.
func (p *Prescription) Medications() []string {
	out := make([]string, len(p.medications))
	copy(out, p.medications)
	return out
}

func (p *Prescription) IssuedAt() time.Time {
	return p.issuedAt
}

func (p *Prescription) String() string {
	return fmt.Sprintf("Prescription [%s]: %s - Prescribed by %s for %s",
		p.issuedAt.Format(displayDateLayout), strings.Join(p.medications, ", "), p.doctor.Name(), p.patient.Name())
}

type prescriptionJSON struct {
	ID          uuid.UUID `json:"id"`
	NationalID  string    `json:"national_id"`
	License     string    `json:"license"`
	DoctorName  string    `json:"doctor_name"`
	Medications []string  `json:"medications"`
	IssuedAt    string    `json:"issued_at"`
}

func (p *Prescription) MarshalJSON() ([]byte, error) {
	return json.Marshal(prescriptionJSON{
		ID:          p.id,
		NationalID:  p.patient.NationalID(),
		License:     p.doctor.License(),
		DoctorName:  p.doctor.Name(),
		Medications: p.Medications(),
		IssuedAt:    FormatDateTime(p.issuedAt),
	})
}
