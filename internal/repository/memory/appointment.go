package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository"
)

type appointmentRepository struct {
	appointments []*model.Appointment
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{}
}

// Create appends without checking for conflicts; that is the scheduler's job.
func (r *appointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *appointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out, nil
}

// FindConflicting scans the whole list for the doctor's slot at the given minute.
func (r *appointmentRepository) FindConflicting(_ context.Context, license string, at time.Time) (*model.Appointment, bool) {
	for _, a := range r.appointments {
		if a.Books(license, at) {
			return a, true
		}
	}
	return nil, false
}

func (r *appointmentRepository) Count(_ context.Context) int {
	return len(r.appointments)
}
