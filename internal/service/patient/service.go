package patient

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

// Service is the directory of patients keyed by national ID. Registering a
// patient also opens the patient's clinical record.
type Service struct {
	repo       repository.PatientRepository
	recordRepo repository.ClinicalRecordRepository
}

func NewService(repo repository.PatientRepository, recordRepo repository.ClinicalRecordRepository) *Service {
	return &Service{
		repo:       repo,
		recordRepo: recordRepo,
	}
}

// Register stores the patient and an empty record, or neither.
func (s *Service) Register(ctx context.Context, patient *model.Patient) error {
	nationalID := patient.NationalID()
	if _, err := s.repo.Get(ctx, nationalID); err == nil {
		return apperrors.PatientAlreadyExists(nationalID)
	}
	if s.recordRepo.Exists(ctx, nationalID) {
		return apperrors.PatientAlreadyExists(nationalID)
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return err
	}
	if err := s.recordRepo.Create(ctx, model.NewClinicalRecord(patient)); err != nil {
		return fmt.Errorf("failed to create clinical record: %w", err)
	}
	return nil
}

func (s *Service) Find(ctx context.Context, nationalID string) (*model.Patient, error) {
	return s.repo.Get(ctx, nationalID)
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}
