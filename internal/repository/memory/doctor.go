package memory

import (
	"context"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type doctorRepository struct {
	doctors *orderedMap[*model.Doctor]
}

func NewDoctorRepository() repository.DoctorRepository {
	return &doctorRepository{doctors: newOrderedMap[*model.Doctor]()}
}

func (r *doctorRepository) Create(_ context.Context, doctor *model.Doctor) error {
	if !r.doctors.insert(doctor.License(), doctor) {
		return apperrors.DoctorAlreadyExists(doctor.License())
	}
	return nil
}

func (r *doctorRepository) Get(_ context.Context, license string) (*model.Doctor, error) {
	doctor, ok := r.doctors.get(license)
	if !ok {
		return nil, apperrors.DoctorNotFound(license)
	}
	return doctor, nil
}

func (r *doctorRepository) List(_ context.Context) ([]*model.Doctor, error) {
	return r.doctors.values(), nil
}

func (r *doctorRepository) Count(_ context.Context) int {
	return r.doctors.len()
}
