package repository

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/model"
)

// All repository interfaces in one file. Implementations are not safe for
// concurrent mutation; the clinic facade serializes writers.
type (
	// PatientRepository stores patients keyed by national ID
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, nationalID string) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		Count(ctx context.Context) int
	}

	// DoctorRepository stores doctors keyed by license number
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, license string) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		Count(ctx context.Context) int
	}

	// AppointmentRepository is the clinic-wide appointment list
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context) ([]*model.Appointment, error)
		FindConflicting(ctx context.Context, license string, at time.Time) (*model.Appointment, bool)
		Count(ctx context.Context) int
	}

	// ClinicalRecordRepository holds one record per patient
	ClinicalRecordRepository interface {
		Create(ctx context.Context, record *model.ClinicalRecord) error
		Get(ctx context.Context, nationalID string) (*model.ClinicalRecord, error)
		Exists(ctx context.Context, nationalID string) bool
	}
)
