package memory

import (
	"context"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type clinicalRecordRepository struct {
	records *orderedMap[*model.ClinicalRecord]
}

func NewClinicalRecordRepository() repository.ClinicalRecordRepository {
	return &clinicalRecordRepository{records: newOrderedMap[*model.ClinicalRecord]()}
}

func (r *clinicalRecordRepository) Create(_ context.Context, record *model.ClinicalRecord) error {
	nationalID := record.Patient().NationalID()
	if !r.records.insert(nationalID, record) {
		return apperrors.PatientAlreadyExists(nationalID)
	}
	return nil
}

func (r *clinicalRecordRepository) Get(_ context.Context, nationalID string) (*model.ClinicalRecord, error) {
	record, ok := r.records.get(nationalID)
	if !ok {
		return nil, apperrors.PatientNotFound(nationalID)
	}
	return record, nil
}

func (r *clinicalRecordRepository) Exists(_ context.Context, nationalID string) bool {
	_, ok := r.records.get(nationalID)
	return ok
}
