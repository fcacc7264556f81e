package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-registry/internal/model"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

func TestPatientRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	require.NoError(t, repo.Create(ctx, model.NewPatient("Juan Perez", "12345678", "01/01/2000")))
	require.NoError(t, repo.Create(ctx, model.NewPatient("Ana Gómez", "87654321", "02/02/1990")))

	err := repo.Create(ctx, model.NewPatient("Otro", "12345678", ""))
	assert.ErrorIs(t, err, apperrors.PatientAlreadyExistsErr)
	assert.Equal(t, 2, repo.Count(ctx))

	p, err := repo.Get(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", p.Name())

	_, err = repo.Get(ctx, "00000000")
	assert.ErrorIs(t, err, apperrors.PatientNotFoundErr)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "12345678", list[0].NationalID())
	assert.Equal(t, "87654321", list[1].NationalID())
}

func TestDoctorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository()

	require.NoError(t, repo.Create(ctx, model.NewDoctor("Dra. López", "M001")))
	assert.ErrorIs(t, repo.Create(ctx, model.NewDoctor("Dr. López", "M001")), apperrors.DoctorAlreadyExistsErr)

	d, err := repo.Get(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, "Dra. López", d.Name())

	_, err = repo.Get(ctx, "M999")
	assert.ErrorIs(t, err, apperrors.DoctorNotFoundErr)
	assert.Equal(t, 1, repo.Count(ctx))
}

func TestAppointmentRepositoryFindConflicting(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()
	p := model.NewPatient("Juan Perez", "12345678", "01/01/2000")
	d := model.NewDoctor("Dra. López", "M001")
	at := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

	_, found := repo.FindConflicting(ctx, "M001", at)
	assert.False(t, found)

	require.NoError(t, repo.Create(ctx, model.NewAppointment(p, d, "Cardiología", at)))

	existing, found := repo.FindConflicting(ctx, "M001", at)
	require.True(t, found)
	assert.Equal(t, "Cardiología", existing.Specialty())

	_, found = repo.FindConflicting(ctx, "M002", at)
	assert.False(t, found)
	_, found = repo.FindConflicting(ctx, "M001", at.Add(time.Minute))
	assert.False(t, found)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0] = nil
	again, _ := repo.List(ctx)
	assert.NotNil(t, again[0])
}

func TestClinicalRecordRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewClinicalRecordRepository()
	p := model.NewPatient("Juan Perez", "12345678", "01/01/2000")

	assert.False(t, repo.Exists(ctx, "12345678"))
	require.NoError(t, repo.Create(ctx, model.NewClinicalRecord(p)))
	assert.True(t, repo.Exists(ctx, "12345678"))
	assert.ErrorIs(t, repo.Create(ctx, model.NewClinicalRecord(p)), apperrors.PatientAlreadyExistsErr)

	r, err := repo.Get(ctx, "12345678")
	require.NoError(t, err)
	assert.Same(t, p, r.Patient())

	_, err = repo.Get(ctx, "1")
	assert.ErrorIs(t, err, apperrors.PatientNotFoundErr)
}
