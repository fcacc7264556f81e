package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClinicalRecord is the append-only history of one patient. It is created with
// the patient and lives as long as the registry does.
type ClinicalRecord struct {
	patient       *Patient
	appointments  []*Appointment
	prescriptions []*Prescription
}

func NewClinicalRecord(patient *Patient) *ClinicalRecord {
	return &ClinicalRecord{patient: patient}
}

func (r *ClinicalRecord) Patient() *Patient {
	return r.patient
}

// Appointments returns a copy in creation order.
func (r *ClinicalRecord) Appointments() []*Appointment {
	out := make([]*Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out
}

// Prescriptions returns a copy in creation order.
func (r *ClinicalRecord) Prescriptions() []*Prescription {
	out := make([]*Prescription, len(r.prescriptions))
	copy(out, r.prescriptions)
	return out
}

func (r *ClinicalRecord) AddAppointment(a *Appointment) {
	r.appointments = append(r.appointments, a)
}

func (r *ClinicalRecord) AddPrescription(p *Prescription) {
	r.prescriptions = append(r.prescriptions, p)
}

// Snapshot returns a record whose lists are detached from r.
func (r *ClinicalRecord) Snapshot() *ClinicalRecord {
	return &ClinicalRecord{
		patient:       r.patient,
		appointments:  r.Appointments(),
		prescriptions: r.Prescriptions(),
	}
}

func (r *ClinicalRecord) String() string {
	appointments := "No appointments"
	if len(r.appointments) > 0 {
		lines := make([]string, len(r.appointments))
		for i, a := range r.appointments {
			lines[i] = a.String()
		}
		appointments = strings.Join(lines, "\n  ")
	}

	prescriptions := "No prescriptions"
	if len(r.prescriptions) > 0 {
		lines := make([]string, len(r.prescriptions))
		for i, p := range r.prescriptions {
			lines[i] = p.String()
		}
		prescriptions = strings.Join(lines, "\n  ")
	}

	return fmt.Sprintf("Clinical record of %s:\nAppointments:\n  %s\nPrescriptions:\n  %s",
		r.patient.Name(), appointments, prescriptions)
}

type clinicalRecordJSON struct {
	Patient       *Patient        `json:"patient"`
	Appointments  []*Appointment  `json:"appointments"`
	Prescriptions []*Prescription `json:"prescriptions"`
}

func (r *ClinicalRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(clinicalRecordJSON{
		Patient:       r.patient,
		Appointments:  r.Appointments(),
		Prescriptions: r.Prescriptions(),
	})
}
