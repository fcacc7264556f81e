package model

// Request payloads shared by the HTTP handlers and the interactive shell.

type RegisterPatientRequest struct {
	Name       string `json:"name" binding:"required" validate:"required"`
	NationalID string `json:"national_id" binding:"required" validate:"required"`
	BirthDate  string `json:"birth_date"`
}

type RegisterDoctorRequest struct {
	Name    string `json:"name" binding:"required" validate:"required"`
	License string `json:"license" binding:"required" validate:"required"`
}

type AddSpecialtyRequest struct {
	Name string   `json:"name" binding:"required" validate:"required"`
	Days []string `json:"days" binding:"dive,required" validate:"dive,required"`
}

type ScheduleAppointmentRequest struct {
	NationalID  string `json:"national_id" binding:"required" validate:"required"`
	License     string `json:"license" binding:"required" validate:"required"`
	Specialty   string `json:"specialty" binding:"required" validate:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required" validate:"required"`
}

// Medications are not required here: an empty list is an InvalidPrescription
// decided by the issuer, not a malformed request.
type IssuePrescriptionRequest struct {
	NationalID  string   `json:"national_id" binding:"required" validate:"required"`
	License     string   `json:"license" binding:"required" validate:"required"`
	Medications []string `json:"medications"`
	IssuedAt    string   `json:"issued_at"`
}
