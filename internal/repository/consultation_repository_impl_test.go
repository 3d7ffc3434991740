package repository

import (
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationClaim(t *testing.T) {
	db := testDB(t)
	repo := NewConsultationRepository()

	patient := createUser(t, db, entity.RolePatient)
	doctorA := createUser(t, db, entity.RoleDoctor)
	doctorB := createUser(t, db, entity.RoleDoctor)

	consultation := &entity.Consultation{
		PatientID: patient.ID,
		Status:    entity.ConsultationStatusPending,
	}
	require.NoError(t, repo.Create(db, consultation))

	t.Run("first claim wins", func(t *testing.T) {
		affected, err := repo.Claim(db, consultation.ID, doctorA.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		got, err := repo.FindByID(db, consultation.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.ConsultationStatusActive, got.Status)
		require.NotNil(t, got.DoctorID)
		assert.Equal(t, doctorA.ID, *got.DoctorID)
	})

	t.Run("second doctor loses and state is untouched", func(t *testing.T) {
		affected, err := repo.Claim(db, consultation.ID, doctorB.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)

		got, err := repo.FindByID(db, consultation.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DoctorID)
		assert.Equal(t, doctorA.ID, *got.DoctorID)
	})

	t.Run("re-claim by assigned doctor is a no-op success", func(t *testing.T) {
		affected, err := repo.Claim(db, consultation.ID, doctorA.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("claim on missing consultation affects nothing", func(t *testing.T) {
		affected, err := repo.Claim(db, uuid.New(), doctorA.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestConsultationClose(t *testing.T) {
	db := testDB(t)
	repo := NewConsultationRepository()

	patient := createUser(t, db, entity.RolePatient)

	consultation := &entity.Consultation{
		PatientID: patient.ID,
		Status:    entity.ConsultationStatusPending,
	}
	require.NoError(t, repo.Create(db, consultation))

	// Closing an unclaimed consultation abandons the request.
	affected, err := repo.Close(db, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(db, consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConsultationStatusCompleted, got.Status)
	assert.Nil(t, got.DoctorID)
}

func TestConsultationQueueForDoctor(t *testing.T) {
	db := testDB(t)
	repo := NewConsultationRepository()

	patient := createUser(t, db, entity.RolePatient)
	doctor := createUser(t, db, entity.RoleDoctor)
	other := createUser(t, db, entity.RoleDoctor)

	pending := &entity.Consultation{PatientID: patient.ID, Status: entity.ConsultationStatusPending}
	require.NoError(t, repo.Create(db, pending))

	mine := &entity.Consultation{PatientID: patient.ID, Status: entity.ConsultationStatusActive, DoctorID: &doctor.ID}
	require.NoError(t, repo.Create(db, mine))

	theirs := &entity.Consultation{PatientID: patient.ID, Status: entity.ConsultationStatusActive, DoctorID: &other.ID}
	require.NoError(t, repo.Create(db, theirs))

	closed := &entity.Consultation{PatientID: patient.ID, Status: entity.ConsultationStatusCompleted, DoctorID: &doctor.ID}
	require.NoError(t, repo.Create(db, closed))

	queue, err := repo.FindQueueForDoctor(db, doctor.ID)
	require.NoError(t, err)

	ids := make([]uuid.UUID, len(queue))
	for i, c := range queue {
		ids[i] = c.ID
	}
	assert.ElementsMatch(t, []uuid.UUID{pending.ID, mine.ID}, ids)
}

func TestConsultationFindByIDWithDetails(t *testing.T) {
	db := testDB(t)
	repo := NewConsultationRepository()
	messageRepo := NewMessageRepository()

	patient := createUser(t, db, entity.RolePatient)
	doctor := createUser(t, db, entity.RoleDoctor)

	consultation := &entity.Consultation{
		PatientID: patient.ID,
		DoctorID:  &doctor.ID,
		Status:    entity.ConsultationStatusActive,
	}
	require.NoError(t, repo.Create(db, consultation))

	first := &entity.Message{ConsultationID: consultation.ID, SenderID: patient.ID, Content: "hello"}
	require.NoError(t, messageRepo.Create(db, first))
	second := &entity.Message{ConsultationID: consultation.ID, SenderID: doctor.ID, Content: "hi"}
	require.NoError(t, messageRepo.Create(db, second))

	got, err := repo.FindByIDWithDetails(db, consultation.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Patient)
	require.NotNil(t, got.Doctor)
	require.Len(t, got.Messages, 2)
	contents := []string{got.Messages[0].Content, got.Messages[1].Content}
	assert.ElementsMatch(t, []string{"hello", "hi"}, contents)
}

func TestConsultationFindByIDMissing(t *testing.T) {
	db := testDB(t)
	repo := NewConsultationRepository()

	got, err := repo.FindByID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
