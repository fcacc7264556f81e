package event

// Event types published after a registry change commits.
const (
	PatientRegistered    = "patient.registered"
	DoctorRegistered     = "doctor.registered"
	SpecialtyAdded       = "doctor.specialty_added"
	AppointmentScheduled = "appointment.scheduled"
	PrescriptionIssued   = "prescription.issued"
)

// Types lists every event type.
func Types() []string {
	return []string{PatientRegistered, DoctorRegistered, SpecialtyAdded, AppointmentScheduled, PrescriptionIssued}
}
