package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/model"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type PatientFinder interface {
	Find(ctx context.Context, nationalID string) (*model.Patient, error)
}

type DoctorFinder interface {
	Find(ctx context.Context, license string) (*model.Doctor, error)
}

type RecordAppender interface {
	AppendPrescription(ctx context.Context, nationalID string, prescription *model.Prescription) error
}

// Service issues prescriptions. They live only in the patient's record.
type Service struct {
	patients PatientFinder
	doctors  DoctorFinder
	records  RecordAppender
	now      func() time.Time
}

func NewService(patients PatientFinder, doctors DoctorFinder, records RecordAppender) *Service {
	return &Service{
		patients: patients,
		doctors:  doctors,
		records:  records,
		now:      time.Now,
	}
}

// WithClock replaces the clock used when no issue time is given.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue records a prescription. A zero issuedAt means now.
func (s *Service) Issue(ctx context.Context, nationalID, license string, medications []string, issuedAt time.Time) (*model.Prescription, error) {
	patient, err := s.patients.Find(ctx, nationalID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.Find(ctx, license)
	if err != nil {
		return nil, err
	}

	meds := model.CleanMedications(medications)
	if len(meds) == 0 {
		return nil, apperrors.InvalidPrescription("at least one medication is required")
	}

	if issuedAt.IsZero() {
		issuedAt = s.now()
	}

	prescription := model.NewPrescription(patient, doctor, meds, issuedAt)
	if err := s.records.AppendPrescription(ctx, patient.NationalID(), prescription); err != nil {
		return nil, fmt.Errorf("failed to append prescription to record: %w", err)
	}

	return prescription, nil
}
