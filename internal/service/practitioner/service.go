package practitioner

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
)

// Service is the directory of doctors keyed by license number.
type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, doctor *model.Doctor) error {
	return s.repo.Create(ctx, doctor)
}

func (s *Service) Find(ctx context.Context, license string) (*model.Doctor, error) {
	return s.repo.Get(ctx, license)
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}

// AddSpecialty appends a new availability to the doctor. Repeating a specialty
// name is allowed and simply adds another entry.
func (s *Service) AddSpecialty(ctx context.Context, license, name string, days []string) (*model.Specialty, error) {
	doctor, err := s.repo.Get(ctx, license)
	if err != nil {
		return nil, err
	}

	specialty := model.NewSpecialty(name, days)
	doctor.AddSpecialty(specialty)
	return specialty, nil
}

// SpecialtyForWeekday returns the first specialty the doctor practices on day.
func (s *Service) SpecialtyForWeekday(doctor *model.Doctor, day string) (string, bool) {
	return doctor.SpecialtyFor(day)
}
