package record

import (
	"context"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
)

// Service gives access to clinical records. Records are opened by the patient
// directory; this service only reads and appends.
type Service struct {
	repo repository.ClinicalRecordRepository
}

func NewService(repo repository.ClinicalRecordRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, nationalID string) (*model.ClinicalRecord, error) {
	return s.repo.Get(ctx, nationalID)
}

func (s *Service) Exists(ctx context.Context, nationalID string) bool {
	return s.repo.Exists(ctx, nationalID)
}

func (s *Service) AppendAppointment(ctx context.Context, nationalID string, appointment *model.Appointment) error {
	r, err := s.repo.Get(ctx, nationalID)
	if err != nil {
		return err
	}
	r.AddAppointment(appointment)
	return nil
}

func (s *Service) AppendPrescription(ctx context.Context, nationalID string, prescription *model.Prescription) error {
	r, err := s.repo.Get(ctx, nationalID)
	if err != nil {
		return err
	}
	r.AddPrescription(prescription)
	return nil
}
