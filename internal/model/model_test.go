package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialtyOffersOnIsCaseInsensitive(t *testing.T) {
	s := NewSpecialty("Cardiología", []string{"Lunes", "MIÉRCOLES", "lunes", " "})

	assert.True(t, s.OffersOn("lunes"))
	assert.True(t, s.OffersOn("LUNES"))
	assert.True(t, s.OffersOn("miércoles"))
	assert.False(t, s.OffersOn("martes"))
	assert.Equal(t, []Weekday{Monday, Wednesday}, s.Days())
	assert.Equal(t, "Cardiología (Days: lunes, miércoles)", s.String())
}

func TestSpecialtyDaysIsACopy(t *testing.T) {
	s := NewSpecialty("Pediatría", []string{"martes"})
	days := s.Days()
	days[0] = Sunday

	assert.Equal(t, []Weekday{Tuesday}, s.Days())
}

func TestDoctorSpecialtyForFirstMatchWins(t *testing.T) {
	d := NewDoctor("Dra. López", "M001")
	d.AddSpecialty(NewSpecialty("Cardiología", []string{"lunes", "miércoles"}))
	d.AddSpecialty(NewSpecialty("Clínica", []string{"lunes", "viernes"}))
	d.AddSpecialty(NewSpecialty("Cardiología", []string{"lunes"}))

	name, ok := d.SpecialtyFor("lunes")
	require.True(t, ok)
	assert.Equal(t, "Cardiología", name)

	name, ok = d.SpecialtyFor("Viernes")
	require.True(t, ok)
	assert.Equal(t, "Clínica", name)

	_, ok = d.SpecialtyFor("domingo")
	assert.False(t, ok)
	assert.Len(t, d.Specialties(), 3)
}

func TestDoctorWithoutSpecialtiesNeverMatches(t *testing.T) {
	d := NewDoctor("Dr. García", "M002")
	for _, day := range Weekdays() {
		_, ok := d.SpecialtyFor(string(day))
		assert.False(t, ok, day)
	}
}

func TestDoctorCloneIsDetached(t *testing.T) {
	d := NewDoctor("Dra. López", "M001")
	d.AddSpecialty(NewSpecialty("Cardiología", []string{"lunes"}))

	clone := d.Clone()
	d.AddSpecialty(NewSpecialty("Clínica", []string{"martes"}))

	assert.Len(t, clone.Specialties(), 1)
	assert.Len(t, d.Specialties(), 2)
}

func TestAppointmentConflicts(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	m1 := NewDoctor("Dra. López", "M001")
	m2 := NewDoctor("Dr. García", "M002")
	at := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	a := NewAppointment(p, m1, "Cardiología", at)

	assert.True(t, a.ConflictsWith(NewAppointment(p, m1, "Dermatología", at)))
	assert.True(t, a.ConflictsWith(NewAppointment(p, m1, "Cardiología", at.Add(30*time.Second))))
	assert.False(t, a.ConflictsWith(NewAppointment(p, m2, "Cardiología", at)))
	assert.False(t, a.ConflictsWith(NewAppointment(p, m1, "Cardiología", at.Add(time.Minute))))
	assert.True(t, a.Books("M001", at))
}

func TestAppointmentAndPrescriptionCopyTheDoctor(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := NewDoctor("Dra. López", "M001")
	d.AddSpecialty(NewSpecialty("Cardiología", []string{"lunes"}))

	a := NewAppointment(p, d, "Cardiología", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))
	rx := NewPrescription(p, d, []string{"Ibuprofeno"}, time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC))
	d.AddSpecialty(NewSpecialty("Clínica", []string{"martes"}))

	assert.Len(t, a.Doctor().Specialties(), 1)
	assert.Len(t, rx.Doctor().Specialties(), 1)
	assert.Equal(t, "M001", a.Doctor().License())
}

func TestAppointmentConflictsAcrossLocations(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := NewDoctor("Dra. López", "M001")
	buenosAires := time.FixedZone("ART", -3*60*60)

	a := NewAppointment(p, d, "Cardiología", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))

	assert.True(t, a.Books("M001", time.Date(2025, 6, 16, 10, 0, 0, 0, buenosAires)))
	assert.False(t, a.Books("M001", time.Date(2025, 6, 16, 7, 0, 0, 0, buenosAires)))
	assert.Equal(t, time.UTC, a.ScheduledAt().Location())
}

func TestAppointmentString(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := NewDoctor("Dra. López", "M001")
	a := NewAppointment(p, d, "Cardiología", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, a.String(), "Specialty: Cardiología")
	assert.Contains(t, a.String(), "16/06/2025 10:00")
}

func TestCleanMedications(t *testing.T) {
	assert.Equal(t, []string{"Ibuprofeno", "Amoxicilina"}, CleanMedications([]string{" Ibuprofeno ", "", "  ", "Amoxicilina"}))
	assert.Empty(t, CleanMedications(nil))
}

func TestClinicalRecordListsAreCopies(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := NewDoctor("Dra. López", "M001")
	r := NewClinicalRecord(p)

	r.AddAppointment(NewAppointment(p, d, "Cardiología", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)))
	r.AddPrescription(NewPrescription(p, d, []string{"Ibuprofeno"}, time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)))

	appts := r.Appointments()
	appts[0] = nil
	rx := r.Prescriptions()
	rx[0] = nil

	require.Len(t, r.Appointments(), 1)
	assert.NotNil(t, r.Appointments()[0])
	require.Len(t, r.Prescriptions(), 1)
	assert.NotNil(t, r.Prescriptions()[0])

	snap := r.Snapshot()
	r.AddPrescription(NewPrescription(p, d, []string{"Paracetamol"}, time.Now()))
	assert.Len(t, snap.Prescriptions(), 1)
	assert.Len(t, r.Prescriptions(), 2)
}

func TestClinicalRecordString(t *testing.T) {
	r := NewClinicalRecord(NewPatient("Juan Perez", "12345678", "01/01/2000"))
	out := r.String()

	assert.Contains(t, out, "Clinical record of Juan Perez")
	assert.Contains(t, out, "No appointments")
	assert.Contains(t, out, "No prescriptions")
}

func TestClinicalRecordJSON(t *testing.T) {
	p := NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := NewDoctor("Dra. López", "M001")
	r := NewClinicalRecord(p)
	r.AddAppointment(NewAppointment(p, d, "Cardiología", time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)))

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var out struct {
		Patient struct {
			NationalID string `json:"national_id"`
		} `json:"patient"`
		Appointments []struct {
			License     string `json:"license"`
			ScheduledAt string `json:"scheduled_at"`
			Weekday     string `json:"weekday"`
		} `json:"appointments"`
		Prescriptions []json.RawMessage `json:"prescriptions"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "12345678", out.Patient.NationalID)
	require.Len(t, out.Appointments, 1)
	assert.Equal(t, "M001", out.Appointments[0].License)
	assert.Equal(t, "2025-06-16T10:00", out.Appointments[0].ScheduledAt)
	assert.Equal(t, "lunes", out.Appointments[0].Weekday)
	assert.Empty(t, out.Prescriptions)
}
