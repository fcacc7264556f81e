package clinic

import (
	"context"
	"sync"
	"time"

	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/repository/memory"
	"github.com/jwalitptl/clinic-registry/internal/service/appointment"
	"github.com/jwalitptl/clinic-registry/internal/service/event"
	"github.com/jwalitptl/clinic-registry/internal/service/patient"
	"github.com/jwalitptl/clinic-registry/internal/service/practitioner"
	"github.com/jwalitptl/clinic-registry/internal/service/prescription"
	"github.com/jwalitptl/clinic-registry/internal/service/record"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
	"github.com/jwalitptl/clinic-registry/pkg/logger"
	"github.com/jwalitptl/clinic-registry/pkg/messaging"
	"github.com/jwalitptl/clinic-registry/pkg/metrics"
)

// ClinicServicer is what the HTTP handlers and the shell drive.
type ClinicServicer interface {
	RegisterPatient(ctx context.Context, name, nationalID, birthDate string) (*model.Patient, error)
	FindPatient(ctx context.Context, nationalID string) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	RegisterDoctor(ctx context.Context, name, license string) (*model.Doctor, error)
	FindDoctor(ctx context.Context, license string) (*model.Doctor, error)
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	AddSpecialty(ctx context.Context, license, name string, days []string) (*model.Doctor, error)
	ScheduleAppointment(ctx context.Context, nationalID, license, specialty string, at time.Time) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]*model.Appointment, error)
	IssuePrescription(ctx context.Context, nationalID, license string, medications []string, issuedAt time.Time) (*model.Prescription, error)
	ClinicalRecord(ctx context.Context, nationalID string) (*model.ClinicalRecord, error)
}

// Service is the single entry point to the registry. One lock guards every
// operation: writers hold it across their whole check-then-insert sequence,
// readers get snapshots that later writes cannot touch.
type Service struct {
	mu sync.RWMutex

	patients      *patient.Service
	doctors       *practitioner.Service
	records       *record.Service
	appointments  *appointment.Service
	prescriptions *prescription.Service

	publisher messaging.Publisher
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

var _ ClinicServicer = (*Service)(nil)

type Option func(*Service)

// WithPublisher sends domain events after each committed change.
func WithPublisher(p messaging.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the clock used for prescriptions issued without a time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.prescriptions.WithClock(now) }
}

// NewService builds an empty in-memory registry.
func NewService(opts ...Option) *Service {
	recordRepo := memory.NewClinicalRecordRepository()

	patients := patient.NewService(memory.NewPatientRepository(), recordRepo)
	doctors := practitioner.NewService(memory.NewDoctorRepository())
	records := record.NewService(recordRepo)

	s := &Service{
		patients:      patients,
		doctors:       doctors,
		records:       records,
		appointments:  appointment.NewService(memory.NewAppointmentRepository(), patients, doctors, records),
		prescriptions: prescription.NewService(patients, doctors, records),
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RegisterPatient(ctx context.Context, name, nationalID, birthDate string) (*model.Patient, error) {
	p := model.NewPatient(name, nationalID, birthDate)

	s.mu.Lock()
	err := s.patients.Register(ctx, p)
	size := s.patients.Count(ctx)
	s.mu.Unlock()

	if err != nil {
		s.reject("register_patient", err)
		return nil, err
	}

	s.committed(ctx, "patient registered", event.PatientRegistered, p, "national_id", nationalID)
	if s.metrics != nil {
		s.metrics.Registrations.WithLabelValues("patient").Inc()
		s.metrics.RegistrySize.WithLabelValues("patients").Set(float64(size))
	}
	return p, nil
}

func (s *Service) FindPatient(ctx context.Context, nationalID string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients.Find(ctx, nationalID)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients.List(ctx)
}

func (s *Service) RegisterDoctor(ctx context.Context, name, license string) (*model.Doctor, error) {
	d := model.NewDoctor(name, license)

	s.mu.Lock()
	err := s.doctors.Register(ctx, d)
	var snapshot *model.Doctor
	if err == nil {
		snapshot = d.Clone()
	}
	size := s.doctors.Count(ctx)
	s.mu.Unlock()

	if err != nil {
		s.reject("register_doctor", err)
		return nil, err
	}

	s.committed(ctx, "doctor registered", event.DoctorRegistered, snapshot, "license", license)
	if s.metrics != nil {
		s.metrics.Registrations.WithLabelValues("doctor").Inc()
		s.metrics.RegistrySize.WithLabelValues("doctors").Set(float64(size))
	}
	return snapshot, nil
}

func (s *Service) FindDoctor(ctx context.Context, license string) (*model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, err := s.doctors.Find(ctx, license)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Doctor, len(doctors))
	for i, d := range doctors {
		out[i] = d.Clone()
	}
	return out, nil
}

// AddSpecialty returns the doctor as it stands after the change.
func (s *Service) AddSpecialty(ctx context.Context, license, name string, days []string) (*model.Doctor, error) {
	s.mu.Lock()
	specialty, err := s.doctors.AddSpecialty(ctx, license, name, days)
	var snapshot *model.Doctor
	if err == nil {
		d, _ := s.doctors.Find(ctx, license)
		snapshot = d.Clone()
	}
	s.mu.Unlock()

	if err != nil {
		s.reject("add_specialty", err)
		return nil, err
	}

	s.committed(ctx, "specialty added", event.SpecialtyAdded, map[string]interface{}{
		"license":   license,
		"specialty": specialty,
	}, "license", license, "specialty", specialty.Name())
	return snapshot, nil
}

func (s *Service) ScheduleAppointment(ctx context.Context, nationalID, license, specialty string, at time.Time) (*model.Appointment, error) {
	s.mu.Lock()
	a, err := s.appointments.Schedule(ctx, nationalID, license, specialty, at)
	size := s.appointments.Count(ctx)
	s.mu.Unlock()

	if err != nil {
		s.reject("schedule_appointment", err)
		return nil, err
	}

	s.committed(ctx, "appointment scheduled", event.AppointmentScheduled, a,
		"national_id", nationalID, "license", license, "scheduled_at", model.FormatDateTime(a.ScheduledAt()))
	if s.metrics != nil {
		s.metrics.AppointmentsScheduled.Inc()
		s.metrics.RegistrySize.WithLabelValues("appointments").Set(float64(size))
	}
	return a, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.List(ctx)
}

func (s *Service) IssuePrescription(ctx context.Context, nationalID, license string, medications []string, issuedAt time.Time) (*model.Prescription, error) {
	s.mu.Lock()
	p, err := s.prescriptions.Issue(ctx, nationalID, license, medications, issuedAt)
	s.mu.Unlock()

	if err != nil {
		s.reject("issue_prescription", err)
		return nil, err
	}

	s.committed(ctx, "prescription issued", event.PrescriptionIssued, p, "national_id", nationalID, "license", license)
	if s.metrics != nil {
		s.metrics.PrescriptionsIssued.Inc()
	}
	return p, nil
}

// ClinicalRecord returns a snapshot of the patient's record.
func (s *Service) ClinicalRecord(ctx context.Context, nationalID string) (*model.ClinicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, err := s.records.Get(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	return r.Snapshot(), nil
}

// committed logs the change and publishes its event. Publishing happens after
// the lock is released and its failure never undoes the change.
func (s *Service) committed(ctx context.Context, msg, eventType string, payload interface{}, fields ...interface{}) {
	s.logger.Info(msg, fields...)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error(err, "failed to publish event", "event_type", eventType)
	}
}

func (s *Service) reject(op string, err error) {
	kind := apperrors.KindOf(err)
	s.logger.Warn("operation rejected", "operation", op, "kind", kind, "error", err.Error())
	if s.metrics != nil {
		s.metrics.Rejections.WithLabelValues(op, kind).Inc()
	}
}
