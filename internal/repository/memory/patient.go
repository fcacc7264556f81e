package memory

import (
	"context"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type patientRepository struct {
	patients *orderedMap[*model.Patient]
}

func NewPatientRepository() repository.PatientRepository {
	return &patientRepository{patients: newOrderedMap[*model.Patient]()}
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	if !r.patients.insert(patient.NationalID(), patient) {
		return apperrors.PatientAlreadyExists(patient.NationalID())
	}
	return nil
}

func (r *patientRepository) Get(_ context.Context, nationalID string) (*model.Patient, error) {
	patient, ok := r.patients.get(nationalID)
	if !ok {
		return nil, apperrors.PatientNotFound(nationalID)
	}
	return patient, nil
}

func (r *patientRepository) List(_ context.Context) ([]*model.Patient, error) {
	return r.patients.values(), nil
}

func (r *patientRepository) Count(_ context.Context) int {
	return r.patients.len()
}
