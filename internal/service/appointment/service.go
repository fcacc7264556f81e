package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type PatientFinder interface {
	Find(ctx context.Context, nationalID string) (*model.Patient, error)
}

type DoctorFinder interface {
	Find(ctx context.Context, license string) (*model.Doctor, error)
	SpecialtyForWeekday(doctor *model.Doctor, day string) (string, bool)
}

type RecordAppender interface {
	Exists(ctx context.Context, nationalID string) bool
	AppendAppointment(ctx context.Context, nationalID string, appointment *model.Appointment) error
}

// Service books appointments against the clinic-wide list.
type Service struct {
	repo     repository.AppointmentRepository
	patients PatientFinder
	doctors  DoctorFinder
	records  RecordAppender
}

func NewService(repo repository.AppointmentRepository, patients PatientFinder, doctors DoctorFinder, records RecordAppender) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		doctors:  doctors,
		records:  records,
	}
}

// Schedule books the doctor for the patient at the given minute. Every check
// runs before anything is written, so a failure leaves no trace.
//
// Eligibility only asks whether the doctor practices some specialty on that
// weekday. The requested specialty label is stored as given.
func (s *Service) Schedule(ctx context.Context, nationalID, license, specialty string, at time.Time) (*model.Appointment, error) {
	at = model.TruncateToMinute(at)

	patient, err := s.patients.Find(ctx, nationalID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.Find(ctx, license)
	if err != nil {
		return nil, err
	}

	if _, taken := s.repo.FindConflicting(ctx, doctor.License(), at); taken {
		return nil, apperrors.DuplicateAppointment(doctor.License(), model.FormatDateTime(at))
	}

	weekday := model.WeekdayOf(at)
	if _, ok := s.doctors.SpecialtyForWeekday(doctor, string(weekday)); !ok {
		return nil, apperrors.DoctorUnavailable(doctor.License(), string(weekday))
	}

	if !s.records.Exists(ctx, patient.NationalID()) {
		return nil, fmt.Errorf("no clinical record for patient %s: %w", patient.NationalID(), apperrors.PatientNotFound(patient.NationalID()))
	}

	appointment := model.NewAppointment(patient, doctor, specialty, at)
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if err := s.records.AppendAppointment(ctx, patient.NationalID(), appointment); err != nil {
		return nil, fmt.Errorf("failed to append appointment to record: %w", err)
	}

	return appointment, nil
}

// List returns the clinic-wide appointments in creation order.
func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}
