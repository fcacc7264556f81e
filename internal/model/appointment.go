package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appointment books a patient with a doctor at a date-time. It has no duration:
// two appointments conflict only on the exact same minute for the same doctor.
type Appointment struct {
	id          uuid.UUID
	patient     *Patient
	doctor      *Doctor
	specialty   string
	scheduledAt time.Time
	createdAt   time.Time
}

// NewAppointment keeps the requested specialty label as given and truncates
// the date-time to the minute. The doctor is copied as it stands, so later
// specialty changes do not reach the appointment.
func NewAppointment(patient *Patient, doctor *Doctor, specialty string, scheduledAt time.Time) *Appointment {
	return &Appointment{
		id:          uuid.New(),
		patient:     patient,
		doctor:      doctor.Clone(),
		specialty:   specialty,
		scheduledAt: TruncateToMinute(scheduledAt),
		createdAt:   time.Now(),
	}
}

func (a *Appointment) ID() uuid.UUID {
	return a.id
}

func (a *Appointment) Patient() *Patient {
	return a.patient
}

func (a *Appointment) Doctor() *Doctor {
	return a.doctor
}

func (a *Appointment) Specialty() string {
	return a.specialty
}

func (a *Appointment) ScheduledAt() time.Time {
	return a.scheduledAt
}

func (a *Appointment) CreatedAt() time.Time {
	return a.createdAt
}

// Books reports whether a occupies the doctor's slot at t.
func (a *Appointment) Books(license string, t time.Time) bool {
	return a.doctor.License() == license && a.scheduledAt.Equal(TruncateToMinute(t))
}

// ConflictsWith reports whether both appointments hold the same doctor slot.
func (a *Appointment) ConflictsWith(other *Appointment) bool {
	return a.Books(other.doctor.License(), other.scheduledAt)
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment: %s | %s | Specialty: %s | Date and time: %s",
		a.patient, a.doctor, a.specialty, a.scheduledAt.Format(displayDateTimeLayout))
}

type appointmentJSON struct {
	ID          uuid.UUID `json:"id"`
	NationalID  string    `json:"national_id"`
	PatientName string    `json:"patient_name"`
	License     string    `json:"license"`
	DoctorName  string    `json:"doctor_name"`
	Specialty   string    `json:"specialty"`
	ScheduledAt string    `json:"scheduled_at"`
	Weekday     Weekday   `json:"weekday"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(appointmentJSON{
		ID:          a.id,
		NationalID:  a.patient.NationalID(),
		PatientName: a.patient.Name(),
		License:     a.doctor.License(),
		DoctorName:  a.doctor.Name(),
		Specialty:   a.specialty,
		ScheduledAt: FormatDateTime(a.scheduledAt),
		Weekday:     WeekdayOf(a.scheduledAt),
		CreatedAt:   a.createdAt,
	})
}
